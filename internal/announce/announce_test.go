package announce

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"releasebot/internal/config"
	"releasebot/internal/segment"
	"releasebot/pkg/logx"
)

type fakeSender struct {
	sent    []string
	failAt  int // 1-based index of the send that fails; 0 = never
	failErr error
}

func (f *fakeSender) Send(ctx context.Context, content string) error {
	if f.failAt > 0 && len(f.sent)+1 == f.failAt {
		return f.failErr
	}
	f.sent = append(f.sent, content)
	return nil
}

func testConfig(t *testing.T, notes string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "RELEASE_NOTES.md")
	if notes != "" {
		if err := os.WriteFile(path, []byte(notes), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return &config.Config{
		WebhookURL:   "https://example.test/hook",
		VersionTag:   "v1.2.3",
		Repository:   "acme/widgets",
		NotesFile:    path,
		MessageLimit: config.DefaultMessageLimit,
		SendEvery:    "1ms",
	}
}

func TestRunDeliversSingleMessage(t *testing.T) {
	cfg := testConfig(t, "- one\n- two\n")
	s := &fakeSender{}
	a := New(cfg, s, logx.Nop())

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(s.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(s.sent))
	}
	want := "🚀 **New Release Published!**\n**Version:** v1.2.3\n**Changelog:**\n- one\n- two\n**Download:** https://github.com/acme/widgets/releases/tag/v1.2.3"
	if s.sent[0] != want {
		t.Fatalf("message = %q\nwant %q", s.sent[0], want)
	}
}

func TestRunFallbackWhenNotesMissing(t *testing.T) {
	cfg := testConfig(t, "")
	s := &fakeSender{}
	a := New(cfg, s, logx.Nop())

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(s.sent) != 1 {
		t.Fatalf("expected fallback message, got %d messages", len(s.sent))
	}
	if !strings.Contains(s.sent[0], "**Version:** v1.2.3") || !strings.Contains(s.sent[0], "**Download:**") {
		t.Fatalf("fallback message incomplete: %q", s.sent[0])
	}
}

func TestComposeUsesNonBlankLinesWithoutBullets(t *testing.T) {
	cfg := testConfig(t, "First change\n\nSecond change\n")
	a := New(cfg, &fakeSender{}, logx.Nop())

	msgs, err := a.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if !strings.Contains(msgs[0], "First change\nSecond change") {
		t.Fatalf("non-blank lines missing from message: %q", msgs[0])
	}
}

func TestComposeSplitsLongChangelogs(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("- ")
		b.WriteString(strings.Repeat("x", 60))
		b.WriteString("\n")
	}
	cfg := testConfig(t, b.String())
	a := New(cfg, &fakeSender{}, logx.Nop())

	msgs, err := a.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(msgs) < 2 {
		t.Fatalf("expected the changelog to split, got %d message(s)", len(msgs))
	}
	for i, m := range msgs {
		if n := segment.Length(m); n > cfg.MessageLimit {
			t.Fatalf("message %d exceeds limit: %d", i, n)
		}
	}
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("- ")
		b.WriteString(strings.Repeat("x", 60))
		b.WriteString("\n")
	}
	cfg := testConfig(t, b.String())
	boom := errors.New("boom")
	s := &fakeSender{failAt: 2, failErr: boom}
	a := New(cfg, s, logx.Nop())

	err := a.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected delivery error, got %v", err)
	}
	if len(s.sent) != 1 {
		t.Fatalf("expected delivery to stop after the first failure, sent %d", len(s.sent))
	}
}

func TestRunRejectsOversizedMessage(t *testing.T) {
	cfg := testConfig(t, "- "+strings.Repeat("x", 3000)+"\n")
	s := &fakeSender{}
	a := New(cfg, s, logx.Nop())

	err := a.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Fatalf("expected size-limit error, got %v", err)
	}
	if len(s.sent) != 0 {
		t.Fatalf("nothing should be sent before the size check fails, sent %d", len(s.sent))
	}
}

func TestRunDryRunSendsNothing(t *testing.T) {
	cfg := testConfig(t, "- one\n")
	s := &fakeSender{}
	a := New(cfg, s, logx.Nop())
	a.DryRun = true

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(s.sent) != 0 {
		t.Fatalf("dry-run must not send, sent %d", len(s.sent))
	}
}
