package tinkoff

import (
	"context"
	"fmt"
	"strings"
	"time"

	investapi "github.com/russianinvestments/invest-api-go-sdk/proto"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Описание счёта для вывода списков и проверки доступа
type Account struct {
	Id          string
	Type        investapi.AccountType
	Name        string
	Status      investapi.AccountStatus
	AccessLevel investapi.AccessLevel
	OpenedDate  time.Time
	ClosedDate  time.Time
	Sandbox     bool
}

func newAccount(ad *investapi.Account, sandbox bool) *Account {
	closedDate := ad.GetClosedDate()
	if closedDate == nil {
		closedDate = &timestamppb.Timestamp{} //set zero time
	}
	return &Account{
		Id:          ad.GetId(),
		Type:        ad.GetType(),
		Name:        ad.GetName(),
		Status:      ad.GetStatus(),
		AccessLevel: ad.GetAccessLevel(),
		OpenedDate:  ad.GetOpenedDate().AsTime(),
		ClosedDate:  closedDate.AsTime(),
		Sandbox:     sandbox,
	}
}

// Боевые счета пользователя
func (c *Client) GetRealAccounts(ctx context.Context) ([]*Account, error) {
	resp, err := c.GetUsersServiceClient().GetAccounts(ctx, &investapi.GetAccountsRequest{})
	if err != nil {
		l.Error("UsersService/GetAccounts", zap.Error(err))
		return nil, err
	}
	result := make([]*Account, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		result = append(result, newAccount(a, false))
	}
	return result, nil
}

// Счета песочницы
func (c *Client) GetSandboxAccounts(ctx context.Context) ([]*Account, error) {
	resp, err := c.GetSandboxServiceClient().GetSandboxAccounts(ctx, &investapi.GetAccountsRequest{})
	if err != nil {
		l.Error("SandboxService/GetSandboxAccounts", zap.Error(err))
		return nil, err
	}
	result := make([]*Account, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		result = append(result, newAccount(a, true))
	}
	return result, nil
}

func AccountStringTableHead() string {
	return "Id\tType\tName\tStatus\tOpenedDate\tClosedDate\tAccessLevel\tSandbox\t"
}

func (a *Account) String() string {
	closedDate := a.ClosedDate.Format("2006-01-02")
	if closedDate == "1970-01-01" {
		closedDate = ""
	}
	sandbox := ""
	if a.Sandbox {
		sandbox = "sandbox"
	}
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t",
		a.Id,
		strings.Replace(a.Type.String(), "ACCOUNT_TYPE_", "", 1),
		a.Name,
		strings.Replace(a.Status.String(), "ACCOUNT_STATUS_", "", 1),
		a.OpenedDate.Format("2006-01-02"),
		closedDate,
		strings.Replace(a.AccessLevel.String(), "ACCOUNT_ACCESS_LEVEL_", "", 1),
		sandbox,
	)
}
