package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

// Setup routes the global zerolog logger through a non-blocking diode writer
// so a slow terminal cannot stall event handlers.
func Setup() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	out := diode.NewWriter(os.Stderr, 1000, 10*time.Millisecond, func(missed int) {
		log.Printf("Logger dropped %v messages", missed)
	})
	log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = out
	}))
	log.Logger = log.With().Caller().Logger()
}
