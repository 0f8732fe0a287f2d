package tinkoff

import (
	"context"

	"github.com/go-invest/balancer"
	investapi "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/sdcoffey/big"
	"go.uber.org/zap"
)

func (c *Client) OpenSandboxAccount(ctx context.Context) (string, error) {
	sandboxAccount, err := c.GetSandboxServiceClient().OpenSandboxAccount(ctx,
		&investapi.OpenSandboxAccountRequest{})
	if err != nil {
		l.DPanic("OpenSandboxAccount", zap.Error(err))
		return "", err
	}

	return sandboxAccount.AccountId, nil
}

func (c *Client) CloseSandboxAccount(ctx context.Context, accountId string) error {
	_, err := c.GetSandboxServiceClient().CloseSandboxAccount(ctx,
		&investapi.CloseSandboxAccountRequest{AccountId: accountId})
	if err != nil {
		l.DPanic("CloseSandboxAccount", zap.Error(err))
		return err
	}
	return nil
}

func (c *Client) SandboxPayIn(ctx context.Context, accountId string, rub big.Decimal) (*balancer.Money, error) {
	res, err := c.GetSandboxServiceClient().SandboxPayIn(ctx,
		&investapi.SandboxPayInRequest{
			AccountId: accountId,
			Amount: balancer.NewMoneyValue(&balancer.Money{
				Currency: "RUB",
				Value:    rub,
			}),
		})
	if err != nil {
		l.DPanic("SandboxPayIn", zap.Error(err))
		return nil, err
	}
	return balancer.NewMoney(res.Balance), nil
}
