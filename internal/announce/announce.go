// Package announce drives one announcement run: compose the messages for a
// release, then deliver them in order to the webhook.
//
// Delivery is deliberately sequential. The destination rate-limits webhooks,
// so sends are paced by a token bucket, and the first failure aborts the run;
// messages already delivered stay delivered.
package announce

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"releasebot/internal/changelog"
	"releasebot/internal/config"
	"releasebot/internal/segment"
	"releasebot/pkg/logx"
)

// Sender delivers one composed message. Satisfied by *webhook.Client.
type Sender interface {
	Send(ctx context.Context, content string) error
}

type Announcer struct {
	cfg     *config.Config
	sender  Sender
	log     logx.Logger
	limiter *rate.Limiter

	// DryRun composes and validates but never sends.
	DryRun bool
}

func New(cfg *config.Config, sender Sender, log logx.Logger) *Announcer {
	return &Announcer{
		cfg:     cfg,
		sender:  sender,
		log:     log,
		limiter: rate.NewLimiter(rate.Every(cfg.SendInterval()), 1),
	}
}

// HeaderLines is the fixed announcement preamble for a release tag.
func HeaderLines(tag string) []string {
	return []string{
		"🚀 **New Release Published!**",
		fmt.Sprintf("**Version:** %s", tag),
		"**Changelog:**",
	}
}

// FooterLines closes the announcement with the release download link.
func FooterLines(repo, tag string) []string {
	return []string{
		fmt.Sprintf("**Download:** https://github.com/%s/releases/tag/%s", repo, tag),
	}
}

// Compose loads the release notes and packs them into limit-sized messages.
// A release with nothing to say still produces one message (header + download
// link) so the announcement is never silently skipped.
func (a *Announcer) Compose() ([]string, error) {
	body, err := changelog.Load(a.cfg.NotesFile)
	if err != nil {
		return nil, err
	}

	header := HeaderLines(a.cfg.VersionTag)
	footer := FooterLines(a.cfg.Repository, a.cfg.VersionTag)

	msgs := segment.Split(header, body, footer, a.cfg.MessageLimit)
	if len(msgs) == 0 {
		msgs = []string{strings.Join(concat(header, footer), "\n")}
	}
	return msgs, nil
}

// Run executes the whole announcement. All messages are size-checked before
// any network activity; the check should never fire given correct
// segmentation, but an oversized message would be rejected by the endpoint
// anyway, and failing here gives a clearer diagnostic.
func (a *Announcer) Run(ctx context.Context) error {
	msgs, err := a.Compose()
	if err != nil {
		return err
	}
	for i, msg := range msgs {
		if n := segment.Length(msg); n > a.cfg.MessageLimit {
			return fmt.Errorf("message %d/%d exceeds %d characters (%d)", i+1, len(msgs), a.cfg.MessageLimit, n)
		}
	}
	a.log.Info("announcement composed",
		logx.String("version", a.cfg.VersionTag),
		logx.Int("messages", len(msgs)),
		logx.Bool("dry_run", a.DryRun))

	for i, msg := range msgs {
		n := segment.Length(msg)

		if a.DryRun {
			a.log.Info("dry-run message",
				logx.Int("index", i+1),
				logx.Int("chars", n),
				logx.String("content", msg))
			continue
		}

		// Pace sends; honors cancellation while waiting.
		if err := a.limiter.Wait(ctx); err != nil {
			return err
		}

		callCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout())
		err := a.sender.Send(callCtx, msg)
		cancel()
		if err != nil {
			return fmt.Errorf("message %d/%d: %w", i+1, len(msgs), err)
		}
		a.log.Info("message delivered", logx.Int("index", i+1), logx.Int("total", len(msgs)), logx.Int("chars", n))
	}
	return nil
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
