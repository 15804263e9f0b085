package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	redisout "github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/redis"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type NotifierIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	notifier  *redisout.Notifier
}

func (suite *NotifierIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = redis.NewClient(&redis.Options{Addr: endpoint})
	suite.Require().NoError(suite.client.Ping(ctx).Err())
	suite.notifier = redisout.NewNotifier(suite.client, "")
}

func (suite *NotifierIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.Require().NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *NotifierIntegrationTestSuite) receive(channel string, publish func()) ports.Notification {
	ctx, cancel := context.WithTimeout(suite.T().Context(), 5*time.Second)
	defer cancel()

	sub := suite.client.Subscribe(ctx, channel)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	suite.Require().NoError(err, "subscription confirmed")

	publish()

	msg, err := sub.ReceiveMessage(ctx)
	suite.Require().NoError(err)
	suite.Equal(channel, msg.Channel)

	var got ports.Notification
	suite.Require().NoError(json.Unmarshal([]byte(msg.Payload), &got))
	return got
}

func (suite *NotifierIntegrationTestSuite) TestNotify_BroadcastWithoutRecipient() {
	n := ports.Notification{
		Type:     ports.NotificationTypeVarianceAlert,
		Priority: "URGENT",
		Title:    "Cycle count variance",
		Message:  "SKU-1 at A-01",
		Data:     map[string]string{"variance": "2"},
	}

	got := suite.receive("notifications:broadcast", func() {
		suite.Require().NoError(suite.notifier.Notify(suite.T().Context(), n))
	})

	suite.Equal(n, got)
}

func (suite *NotifierIntegrationTestSuite) TestNotify_RecipientChannel() {
	n := ports.Notification{RecipientID: "user-7", Type: ports.NotificationTypeVarianceAlert, Priority: "HIGH"}
	suite.Equal("notifications:user:user-7", suite.notifier.Channel(n))

	got := suite.receive("notifications:user:user-7", func() {
		suite.Require().NoError(suite.notifier.Notify(suite.T().Context(), n))
	})

	suite.Equal("user-7", got.RecipientID)
	suite.Equal("HIGH", got.Priority)
}

func (suite *NotifierIntegrationTestSuite) TestNotify_ClosedClient_ReturnsError() {
	client := redis.NewClient(&redis.Options{Addr: suite.client.Options().Addr})
	suite.Require().NoError(client.Close())

	err := redisout.NewNotifier(client, "alerts").Notify(suite.T().Context(), ports.Notification{Type: "X"})
	suite.Require().Error(err)
	suite.Contains(err.Error(), "publish to alerts:broadcast")
}

func TestNotifierIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(NotifierIntegrationTestSuite))
}
