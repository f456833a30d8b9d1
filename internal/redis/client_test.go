package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/psychics/internal/redis"
)

type ClientTestSuite struct {
	suite.Suite
	server *miniredis.Miniredis
}

func (s *ClientTestSuite) SetupTest() {
	s.server = miniredis.RunT(s.T())
}

func (s *ClientTestSuite) TestNewClient() {
	s.Run("requires an endpoint", func() {
		client, err := redis.NewClient("", nil)
		s.Require().Error(err)
		s.Assert().Nil(client)
	})

	s.Run("talks to the server", func() {
		client, err := redis.NewClient(s.server.Addr(), &redis.Options{PoolSize: 2})
		s.Require().NoError(err)
		defer func() { _ = client.Close() }()

		s.Require().NoError(client.Set(context.Background(), "k", "v", 0).Err())
		got, err := s.server.Get("k")
		s.Require().NoError(err)
		s.Assert().Equal("v", got)
	})
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
