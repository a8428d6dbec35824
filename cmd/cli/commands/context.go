package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/inncontrol/internal/config"
	"github.com/jakechorley/inncontrol/pkg/clients/hotelapi"
	"github.com/jakechorley/inncontrol/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env      string
	Cfg      *config.Config
	Client   *hotelapi.Client
	Session  *hotelapi.Session
	Activity db.ActivityStore
	Recorder *db.Recorder
	Logger   *zap.Logger
	Ctx      context.Context
}
