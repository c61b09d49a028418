package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/longkey1/translitc/internal/translit"
	"github.com/longkey1/translitc/internal/translit/session"
)

// repl drives a Session from line-oriented input.
// Plain lines are submitted as drafts; lines starting with "/" are commands.
type repl struct {
	sess    *session.Session
	in      io.Reader
	out     io.Writer // conversation output
	errOut  io.Writer // prompts, spinner and notices
	spinner bool

	rendered int // number of log entries already shown

	botColor    *color.Color
	errorColor  *color.Color
	noticeColor *color.Color
	indexColor  *color.Color
}

func newREPL(sess *session.Session, in io.Reader, out, errOut io.Writer, interactive bool) *repl {
	r := &repl{
		sess:        sess,
		in:          in,
		out:         out,
		errOut:      errOut,
		spinner:     interactive,
		botColor:    color.New(color.FgGreen),
		errorColor:  color.New(color.FgRed),
		noticeColor: color.New(color.FgYellow),
		indexColor:  color.New(color.Faint),
	}
	if !interactive {
		for _, c := range []*color.Color{r.botColor, r.errorColor, r.noticeColor, r.indexColor} {
			c.DisableColor()
		}
	}
	return r
}

// run reads input until EOF or an exit command
func (r *repl) run() error {
	scanner := bufio.NewScanner(r.in)

	for {
		r.prompt()

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
			fmt.Fprintln(r.errOut, "\nGoodbye!")
			return nil
		}

		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "/") {
			if !r.handleCommand(strings.TrimSpace(line)) {
				return nil
			}
			continue
		}

		r.sess.SetDraft(line)
		if !r.sess.SubmitDraft() {
			// Blank lines are ignored
			continue
		}
		r.waitForReply()
	}
}

// prompt always reads as a transliteration prompt; plain lines are drafts
// even while a correction form is open
func (r *repl) prompt() {
	fmt.Fprintf(r.errOut, "You [%s]> ", r.sess.Snapshot().Language)
}

// waitForReply shows a spinner until the dispatch cycle settles, then renders the reply
func (r *repl) waitForReply() {
	done := make(chan struct{})
	go func() {
		r.sess.Wait()
		close(done)
	}()

	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i = (i + 1) % len(spinners) {
		select {
		case <-done:
			if r.spinner {
				// Clear the spinner line
				fmt.Fprint(r.errOut, "\r\033[K")
			}
			r.renderNew(r.sess.Snapshot())
			return
		case <-ticker.C:
			if r.spinner {
				fmt.Fprintf(r.errOut, "\r%s Transliterating...", spinners[i])
			}
		}
	}
}

// renderNew prints Bot messages added since the last render
func (r *repl) renderNew(snap session.Snapshot) {
	for i := r.rendered; i < len(snap.Log); i++ {
		m := snap.Log[i]
		if m.Role == translit.RoleBot {
			r.renderMessage(i+1, m)
		}
	}
	r.rendered = len(snap.Log)
}

func (r *repl) renderMessage(n int, m translit.Message) {
	idx := r.indexColor.Sprintf("[%d]", n)
	switch {
	case m.Role == translit.RoleUser:
		fmt.Fprintf(r.out, "%s You> %s\n", idx, m.Content)
	case m.IsError:
		fmt.Fprintf(r.out, "%s %s\n", idx, r.errorColor.Sprintf("Bot> %s", m.Content))
	default:
		fmt.Fprintf(r.out, "%s %s\n", idx, r.botColor.Sprintf("Bot> %s", m.Content))
	}
}

func (r *repl) notice(format string, args ...interface{}) {
	fmt.Fprintln(r.errOut, r.noticeColor.Sprintf(format, args...))
}

// messageAt resolves a 1-based log position typed by the user
func messageAt(snap session.Snapshot, arg string) (translit.Message, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return translit.Message{}, fmt.Errorf("expected a message number, got %q", arg)
	}
	if n < 1 || n > len(snap.Log) {
		return translit.Message{}, fmt.Errorf("no message [%d]", n)
	}
	return snap.Log[n-1], nil
}

// handleCommand processes a slash command.
// Returns true to continue the loop, false to exit
func (r *repl) handleCommand(line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	arg = strings.TrimSpace(arg)

	switch name {
	case "/help", "/h":
		r.printHelp()

	case "/info", "/i":
		snap := r.sess.Snapshot()
		fmt.Fprintln(r.errOut, "\nSession Information:")
		fmt.Fprintf(r.errOut, "  Language: %s (%s)\n", snap.Language, snap.Language.Label())
		fmt.Fprintf(r.errOut, "  Messages: %d\n", len(snap.Log))
		fmt.Fprintf(r.errOut, "  Pending: %v\n", snap.Pending)
		if snap.OpenCorrectionFor != "" {
			fmt.Fprintf(r.errOut, "  Correcting: %s\n", snap.OpenCorrectionFor)
		}
		fmt.Fprintln(r.errOut, "")

	case "/lang", "/l":
		if arg == "" {
			lang := r.sess.Snapshot().Language
			fmt.Fprintf(r.errOut, "Language: %s (%s)\n", lang, lang.Label())
			break
		}
		lang, err := translit.ParseLanguage(arg)
		if err != nil {
			r.notice("%v", err)
			break
		}
		r.sess.SelectLanguage(lang)
		fmt.Fprintf(r.errOut, "Language set to %s (%s)\n", lang, lang.Label())

	case "/languages":
		for _, l := range translit.Languages() {
			fmt.Fprintf(r.errOut, "  %-6s %s\n", l.Code, l.Label)
		}

	case "/ok", "/wrong":
		m, err := messageAt(r.sess.Snapshot(), arg)
		if err != nil {
			r.notice("%v", err)
			break
		}
		if err := r.sess.MarkFeedback(m.ID, name == "/ok"); err != nil {
			r.notice("Only successful transliterations can be rated.")
			break
		}
		if name == "/ok" {
			fmt.Fprintln(r.errOut, "Thanks for the feedback!")
			break
		}
		snap := r.sess.Snapshot()
		if snap.OpenCorrectionFor == "" {
			fmt.Fprintln(r.errOut, "Correction form closed.")
			break
		}
		fmt.Fprintf(r.errOut, "Correcting [%s]. Source: %q\n", arg, snap.CorrectionDraft.SourceText)
		fmt.Fprintln(r.errOut, "Use /source <text> and /fix <text>, then /submit or /cancel.")

	case "/source", "/fix":
		if r.sess.Snapshot().OpenCorrectionFor == "" {
			r.notice("No correction form is open. Use /wrong <n> first.")
			break
		}
		field := session.FieldSourceText
		if name == "/fix" {
			field = session.FieldCorrectedText
		}
		if err := r.sess.UpdateDraft(field, arg); err != nil {
			r.notice("%v", err)
		}

	case "/submit":
		id := r.sess.Snapshot().OpenCorrectionFor
		if id == "" {
			r.notice("No correction form is open. Use /wrong <n> first.")
			break
		}
		if err := r.sess.SubmitCorrection(context.Background(), id); err != nil {
			r.notice("Correction could not be submitted: %v", err)
			break
		}
		fmt.Fprintln(r.errOut, "Correction submitted. Thank you!")

	case "/cancel":
		r.sess.CancelCorrection()
		fmt.Fprintln(r.errOut, "Correction form closed.")

	case "/history":
		for i, m := range r.sess.Snapshot().Log {
			r.renderMessage(i+1, m)
		}

	case "/clear", "/c":
		fmt.Fprint(r.out, "\033[H\033[2J")

	case "/exit", "/quit", "/q":
		fmt.Fprintln(r.errOut, "Goodbye!")
		return false

	default:
		r.notice("Unknown command: %s (type '/help' for available commands)", name)
	}
	return true
}

func (r *repl) printHelp() {
	fmt.Fprintln(r.errOut, "\nAvailable commands:")
	fmt.Fprintln(r.errOut, "  /help, /h          - Show this help message")
	fmt.Fprintln(r.errOut, "  /info, /i          - Show session information")
	fmt.Fprintln(r.errOut, "  /lang [code]       - Show or set the language mode")
	fmt.Fprintln(r.errOut, "  /languages         - List language modes")
	fmt.Fprintln(r.errOut, "  /ok <n>            - Mark message n as correct")
	fmt.Fprintln(r.errOut, "  /wrong <n>         - Open (or close) the correction form for message n")
	fmt.Fprintln(r.errOut, "  /source <text>     - Set the original text of the correction")
	fmt.Fprintln(r.errOut, "  /fix <text>        - Set the corrected transliteration")
	fmt.Fprintln(r.errOut, "  /submit            - Submit the correction")
	fmt.Fprintln(r.errOut, "  /cancel            - Close the correction form")
	fmt.Fprintln(r.errOut, "  /history           - Show the whole conversation")
	fmt.Fprintln(r.errOut, "  /clear, /c         - Clear screen")
	fmt.Fprintln(r.errOut, "  /exit, /quit       - Exit interactive mode")
	fmt.Fprintln(r.errOut, "  Ctrl+D             - Exit interactive mode")
	fmt.Fprintln(r.errOut, "")
}
