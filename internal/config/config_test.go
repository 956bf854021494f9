package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) TestLoadDefaults() {
	cfg, err := Load()
	s.Require().NoError(err)
	s.Equal(":8080", cfg.ListenAddr)
	s.Equal(30*time.Second, cfg.TurnBase)
	s.Equal(8*time.Second, cfg.TurnFloor)
	s.Equal(2*time.Second, cfg.TurnDecrement)
	s.Equal("memory", cfg.StorageKind)
}

func (s *ConfigSuite) TestLoadFromEnvironment() {
	s.T().Setenv("KURIMU_LISTEN_ADDR", ":9090")
	s.T().Setenv("KURIMU_TURN_BASE", "45s")
	s.T().Setenv("KURIMU_STORAGE", "sqlite")

	cfg, err := Load()
	s.Require().NoError(err)
	s.Equal(":9090", cfg.ListenAddr)
	s.Equal(45*time.Second, cfg.TurnBase)
	s.Equal("sqlite", cfg.StorageKind)
}

func (s *ConfigSuite) TestValidateRejectsZeroFloor() {
	cfg := Config{TurnBase: time.Minute, TurnFloor: 0}
	s.Error(cfg.Validate())
}

func (s *ConfigSuite) TestValidateRejectsBaseBelowFloor() {
	cfg := Config{TurnBase: 5 * time.Second, TurnFloor: 8 * time.Second, StorageKind: "memory"}
	s.Error(cfg.Validate())
}

func (s *ConfigSuite) TestValidateRejectsNegativeDecrement() {
	cfg := Config{TurnBase: time.Minute, TurnFloor: time.Second, TurnDecrement: -time.Second, StorageKind: "memory"}
	s.Error(cfg.Validate())
}

func (s *ConfigSuite) TestValidateRejectsUnknownStorage() {
	cfg := Config{TurnBase: time.Minute, TurnFloor: time.Second, StorageKind: "postgres"}
	s.Error(cfg.Validate())
}

func (s *ConfigSuite) TestLoadRejectsBadDuration() {
	s.T().Setenv("KURIMU_TURN_BASE", "soon")
	_, err := Load()
	s.Error(err)
}
