package notify

import (
	"context"
	"strconv"

	"go.uber.org/zap"
)

// ConsoleService logs messages instead of sending them.
type ConsoleService struct {
	log *zap.Logger
}

func NewConsoleService(log *zap.Logger) *ConsoleService {
	return &ConsoleService{log: log}
}

func (s *ConsoleService) Send(_ context.Context, msg Message) error {
	s.log.Info("email (console)",
		zap.String("to", msg.ToAddr),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Text),
	)
	return nil
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
