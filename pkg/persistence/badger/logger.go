package badger

import (
	"fmt"
	"strings"

	badgerdb "github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"
)

// badgerLoggerAdapter routes badger's printf-style logging into zap.
// Badger's info output (compactions, value log replay) is demoted to debug so a
// one-off export stays quiet.
type badgerLoggerAdapter struct {
	logger *zap.Logger
}

var _ badgerdb.Logger = (*badgerLoggerAdapter)(nil)

func newBadgerLoggerAdapter(logger *zap.Logger) *badgerLoggerAdapter {
	return &badgerLoggerAdapter{logger: logger.With(zap.String("component", "round-store"))}
}

// badger terminates most messages with a newline
func format(f string, args ...interface{}) string {
	return strings.TrimRight(fmt.Sprintf(f, args...), "\n")
}

func (b *badgerLoggerAdapter) Errorf(f string, args ...interface{}) {
	b.logger.Error(format(f, args...))
}

func (b *badgerLoggerAdapter) Warningf(f string, args ...interface{}) {
	b.logger.Warn(format(f, args...))
}

func (b *badgerLoggerAdapter) Infof(f string, args ...interface{}) {
	b.logger.Debug(format(f, args...))
}

func (b *badgerLoggerAdapter) Debugf(f string, args ...interface{}) {
	b.logger.Debug(format(f, args...))
}
