// cmd/benchpct/logging.go
package benchpct

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mwiater/benchpct/internal/reporterrors"
)

// ConfigureLogging sends logs to stderr, keeping stdout for reports, and
// applies level.
func ConfigureLogging(level string) error {
	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true})
	log.SetOutput(os.Stderr)

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.WithStack(&reporterrors.ErrInvalidConfig{Field: "log_level", Value: level, Message: err.Error()})
	}
	log.SetLevel(lvl)
	return nil
}
