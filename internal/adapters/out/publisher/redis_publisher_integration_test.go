package publisher_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fieldservice/internal/adapters/out/publisher"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisPublisherIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
}

func (suite *RedisPublisherIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = redis.NewClient(&redis.Options{Addr: endpoint})
	suite.Require().NoError(suite.client.Ping(ctx).Err())
}

func (suite *RedisPublisherIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.Require().NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RedisPublisherIntegrationTestSuite) TestPublish_DeliversToRecipientChannel() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p := publisher.NewRedisPublisher(suite.client, "")
	suite.Equal("notifications:user:7", p.Channel(7))

	sub := suite.client.Subscribe(ctx, p.Channel(7))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	suite.Require().NoError(err)

	n := newNotification(suite.T())
	suite.Require().NoError(p.Publish(ctx, n))

	msg, err := sub.ReceiveMessage(ctx)
	suite.Require().NoError(err)

	var got publisher.Message
	suite.Require().NoError(json.Unmarshal([]byte(msg.Payload), &got))
	suite.Equal(n.ID().String(), got.ID)
	suite.Equal(int64(42), got.OrderID)
	suite.Equal("ORDER_ASSIGNED", got.Kind)
	suite.True(got.CreatedAt.Equal(createdAt))
}

func (suite *RedisPublisherIntegrationTestSuite) TestPublish_ClosedClient_ReturnsError() {
	client := redis.NewClient(&redis.Options{Addr: suite.client.Options().Addr})
	suite.Require().NoError(client.Close())

	err := publisher.NewRedisPublisher(client, "test:").Publish(context.Background(), newNotification(suite.T()))

	suite.Error(err)
}

func TestRedisPublisherIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RedisPublisherIntegrationTestSuite))
}
