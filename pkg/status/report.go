package status

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 Reporter provides user-friendly feedback about copy jobs
type Reporter struct {
	out io.Writer
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewReporter creates a new job reporter writing to out
func NewReporter(ctx context.Context, out io.Writer) *Reporter {
	return &Reporter{
		out: out,
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 StartJob announces that a copy job is beginning
func (r *Reporter) StartJob(name, source, destination string) {
	msg := fmt.Sprintf("%s: %s -> %s", name, source, destination)
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).WithWriter(r.out).Println(msg)
	r.log.Info().
		Str("job", name).
		Str("source", source).
		Str("destination", destination).
		Msg("starting copy job")
}

// ✅ JobDone announces a successful copy job with its summary
func (r *Reporter) JobDone(name, summary string) {
	msg := fmt.Sprintf("%s (%s)", name, summary)
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).WithWriter(r.out).Println(msg)
	r.log.Info().Str("job", name).Msg("copy job complete")
}

// ❌ JobFailed announces a failed copy job
func (r *Reporter) JobFailed(name string, err error) {
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(r.out).Println(name)
	pterm.Error.WithWriter(r.out).Println(err)
	r.log.Error().Err(err).Str("job", name).Msg("copy job failed")
}
