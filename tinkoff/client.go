package tinkoff

import (
	"context"
	"crypto/tls"
	"time"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/oauth"
	"google.golang.org/grpc/metadata"

	"github.com/go-invest/balancer"
	investapi "github.com/russianinvestments/invest-api-go-sdk/proto"
)

var _ balancer.Broker = (*Client)(nil)

type Client struct {
	ctx      context.Context
	endpoint string
	grpcOpts []grpc.DialOption
	conn     *grpc.ClientConn

	marketDataServiceClient  investapi.MarketDataServiceClient
	usersServiceClient       investapi.UsersServiceClient
	sandboxServiceClient     investapi.SandboxServiceClient
	instrumentsServiceClient investapi.InstrumentsServiceClient
	operationsServiceClient  investapi.OperationsServiceClient
	ordersServiceClient      investapi.OrdersServiceClient

	Instruments *Instruments
	limit       *Limits

	Sandbox    bool          // счёт в песочнице: заявки идут через SandboxService
	OrderPause time.Duration // пауза между заявками одного плана
}

func NewClient(endpoint string, token string) *Client {
	client := &Client{
		endpoint: endpoint,
		limit:    &Limits{},
	}
	client.grpcOpts = []grpc.DialOption{
		grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{})),
		grpc.WithPerRPCCredentials(oauth.NewOauthAccess(&oauth2.Token{
			AccessToken: token,
		})),
		grpc.WithStreamInterceptor(grpc_prometheus.StreamClientInterceptor),
		grpc.WithUnaryInterceptor(grpc_middleware.ChainUnaryClient(
			client.withAppName,
			client.limit.withLimit,
			grpc_prometheus.UnaryClientInterceptor,
		)),
	}
	client.Instruments = NewInstruments(client)

	return client
}

func (c *Client) Open(ctx context.Context) (err error) {
	c.ctx = ctx
	c.conn, err = grpc.Dial(c.endpoint, c.grpcOpts...)
	if err != nil {
		return err
	}

	c.marketDataServiceClient = investapi.NewMarketDataServiceClient(c.conn)
	c.usersServiceClient = investapi.NewUsersServiceClient(c.conn)
	c.sandboxServiceClient = investapi.NewSandboxServiceClient(c.conn)
	c.instrumentsServiceClient = investapi.NewInstrumentsServiceClient(c.conn)
	c.operationsServiceClient = investapi.NewOperationsServiceClient(c.conn)
	c.ordersServiceClient = investapi.NewOrdersServiceClient(c.conn)

	err = c.limit.Load(ctx, c.conn)
	if err != nil {
		l.DPanic("limit.Load", zap.Error(err))
	}
	err = c.Instruments.LoadNew(ctx)
	if err != nil {
		l.DPanic("Instruments.LoadNew", zap.Error(err))
	}
	return err
}

func (c *Client) Close() error {
	l.Debug("закрываю соединение")
	c.marketDataServiceClient = nil
	c.usersServiceClient = nil
	c.sandboxServiceClient = nil
	c.instrumentsServiceClient = nil
	c.operationsServiceClient = nil
	c.ordersServiceClient = nil
	return c.conn.Close()
}

func (c *Client) Etfs(ctx context.Context, status investapi.InstrumentStatus) ([]*investapi.Etf, error) {
	l.Debug("запрашиваю все etfs")
	etfsResponse, err := c.instrumentsServiceClient.Etfs(ctx, &investapi.InstrumentsRequest{
		InstrumentStatus: status,
	})
	if err != nil {
		return nil, err
	}
	return etfsResponse.Instruments, nil
}

func (c *Client) Shares(ctx context.Context, status investapi.InstrumentStatus) ([]*investapi.Share, error) {
	l.Debug("запрашиваю все shares")
	sharesResponse, err := c.instrumentsServiceClient.Shares(ctx, &investapi.InstrumentsRequest{
		InstrumentStatus: status,
	})
	if err != nil {
		return nil, err
	}
	return sharesResponse.Instruments, nil
}

func (c *Client) withAppName(ctx context.Context,
	method string,
	req interface{},
	reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	appName := metadata.AppendToOutgoingContext(ctx, "x-app-name", "github.com/go-invest/balancer")
	return invoker(appName, method, req, reply, cc, opts...)
}

func (c *Client) GetOrdersServiceClient() investapi.OrdersServiceClient {
	return c.ordersServiceClient
}
func (c *Client) GetSandboxServiceClient() investapi.SandboxServiceClient {
	return c.sandboxServiceClient
}
func (c *Client) GetOperationsServiceClient() investapi.OperationsServiceClient {
	return c.operationsServiceClient
}
func (c *Client) GetUsersServiceClient() investapi.UsersServiceClient {
	return c.usersServiceClient
}
func (c *Client) GetInstrumentsServiceClient() investapi.InstrumentsServiceClient {
	return c.instrumentsServiceClient
}
func (c *Client) GetMarketDataServiceClient() investapi.MarketDataServiceClient {
	return c.marketDataServiceClient
}
