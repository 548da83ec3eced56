package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.T().Setenv("JWT_SECRET", "secret")
	s.T().Setenv("STORE_DRIVER", StoreMemory)
	s.T().Setenv("DELIVERY_TARGET", DeliveryNone)
}

func (s *ConfigTestSuite) TestDefaults() {
	conf, err := load(nil)
	s.Require().NoError(err)

	s.Equal(StoreMemory, conf.StoreDriver)
	s.Equal("internal/db/migrations", conf.MigrationsDir)
	s.True(conf.SeedBalance.Equal(decimal.NewFromInt(100)))
	s.Equal(uint(5), conf.DeliveryWorkers)
}

func (s *ConfigTestSuite) TestEnvOverridesFlags() {
	s.T().Setenv("RUN_ADDRESS", "0.0.0.0:9090")
	s.T().Setenv("ADMIN_ACCOUNTS", "0xADMIN, 0xROOT ,")

	conf, err := load([]string{"-a", "localhost:1234", "-j", "flag-secret"})
	s.Require().NoError(err)

	s.Equal("0.0.0.0:9090", conf.RunAddress)
	s.Equal("secret", conf.JWTSecret)
	s.Equal([]string{"0xADMIN", "0xROOT"}, conf.AdminAccounts)
}

func (s *ConfigTestSuite) TestValidation() {
	cases := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "postgres without dsn", args: []string{"-s", StorePostgres}, env: map[string]string{"STORE_DRIVER": StorePostgres, "DATABASE_URI": ""}},
		{name: "redis without url", env: map[string]string{"STORE_DRIVER": StoreRedis, "REDIS_URL": ""}},
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "sqlite"}},
		{name: "webhook without url", env: map[string]string{"DELIVERY_TARGET": DeliveryWebhook, "WEBHOOK_URL": ""}},
		{name: "kafka without brokers", env: map[string]string{"DELIVERY_TARGET": DeliveryKafka, "KAFKA_BROKERS": ""}},
		{name: "non positive seed", env: map[string]string{"SEED_BALANCE": "-1"}},
		{name: "no jwt secret", env: map[string]string{"JWT_SECRET": ""}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			for k, v := range tc.env {
				s.T().Setenv(k, v)
			}
			_, err := load(tc.args)
			s.Error(err)
		})
	}
}

func (s *ConfigTestSuite) TestKafkaTarget() {
	s.T().Setenv("DELIVERY_TARGET", DeliveryKafka)
	s.T().Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	conf, err := load(nil)
	s.Require().NoError(err)
	s.Equal([]string{"kafka-1:9092", "kafka-2:9092"}, conf.KafkaBrokers)
	s.Equal("escrow.notifications", conf.KafkaTopic)
}
