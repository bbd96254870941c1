package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/catalog/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithTimeLayout("none"),
	)

	logger.Info("catalog loaded", slog.Int("sections", 3))
	logger.Debug("not shown at the default level")
	// Output:
	// level=INFO msg="catalog loaded" sections=3
}
