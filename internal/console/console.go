// Package console runs an interview, or the chatbot, as a plain line-mode
// conversation on a terminal or a pipe.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/chatbot"
	"github.com/abhisek/mockinterview/internal/dashboard"
	"github.com/abhisek/mockinterview/internal/session"
)

// Reader returns one line of user input. io.EOF ends the conversation.
type Reader interface {
	ReadLine(label string) (string, error)
}

// Prompt reads lines with promptui. Ctrl+C and Ctrl+D end the conversation.
type Prompt struct{}

func (Prompt) ReadLine(label string) (string, error) {
	p := promptui.Prompt{Label: label}
	line, err := p.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return "", io.EOF
	}
	return line, err
}

// Lines reads newline separated input, e.g. from a pipe.
type Lines struct {
	sc *bufio.Scanner
}

// NewLines returns a Reader over r.
func NewLines(r io.Reader) *Lines {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return &Lines{sc: sc}
}

func (l *Lines) ReadLine(string) (string, error) {
	if !l.sc.Scan() {
		if err := l.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return l.sc.Text(), nil
}

const help = `Commands:
  /record   start recording your answer, press Enter to stop
  /reset    start a new interview
  /quit     leave
Anything else is sent as text.`

// Interview drives one Machine from line input.
type Interview struct {
	Machine  *session.Machine
	In       Reader
	Out      io.Writer
	Advisor  *dashboard.Advisor
	Logger   *zap.Logger
}

// Run loops until the input ends or the user quits. Leaving mid-interview
// records the session as abandoned.
func (iv *Interview) Run(ctx context.Context) error {
	log := iv.Logger
	if log == nil {
		log = zap.NewNop()
	}

	iv.say(iv.Machine.Intro()...)
	fmt.Fprintln(iv.Out, "Type /help for commands.")

	for {
		label := iv.Machine.Session().Stage.Label()
		line, err := iv.In.ReadLine(label)
		if errors.Is(err, io.EOF) {
			iv.leave()
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		switch strings.TrimSpace(line) {
		case "/quit", "/exit":
			iv.leave()
			return nil
		case "/help":
			fmt.Fprintln(iv.Out, help)
			continue
		case "/reset":
			iv.show(ctx, iv.Machine.Reset())
			continue
		case "/record":
			if err := iv.record(ctx); err != nil {
				return err
			}
			continue
		}

		log.Debug("text input", zap.String("stage", label))
		iv.show(ctx, iv.Machine.Submit(ctx, line))
	}
}

func (iv *Interview) record(ctx context.Context) error {
	reply := iv.Machine.StartRecording(ctx)
	iv.show(ctx, reply)
	if !iv.Machine.Session().RecordingActive {
		return nil
	}
	if _, err := iv.In.ReadLine("Recording, press Enter to stop"); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read input: %w", err)
	}
	iv.show(ctx, iv.Machine.StopRecording(ctx))
	return nil
}

func (iv *Interview) leave() {
	st := iv.Machine.Session().Stage
	if st != session.StageStart && st != session.StageDashboard {
		iv.Machine.Reset()
	}
	fmt.Fprintln(iv.Out, "Goodbye.")
}

func (iv *Interview) show(ctx context.Context, r session.Reply) {
	iv.say(r.Messages...)
	if r.Changed && r.Stage == session.StageDashboard {
		iv.dashboard(ctx)
	}
}

func (iv *Interview) dashboard(ctx context.Context) {
	s := iv.Machine.Session()
	hr, tech := iv.Machine.Entries()
	rep := dashboard.NewReport(s.CandidateID, s.Domain, hr, tech)

	var adv *dashboard.Advice
	if iv.Advisor != nil {
		fmt.Fprintln(iv.Out, "Preparing personalised feedback...")
		adv = iv.Advisor.Advise(ctx, rep)
	}
	fmt.Fprintln(iv.Out)
	dashboard.WriteText(iv.Out, rep, adv)
	fmt.Fprintln(iv.Out, "\nType /reset to start a new interview or /quit to leave.")
}

func (iv *Interview) say(lines ...string) {
	for _, l := range lines {
		fmt.Fprintf(iv.Out, "Interviewer: %s\n", l)
	}
}

// Chat runs the chatbot until the input ends.
func Chat(ctx context.Context, bot *chatbot.Chat, in Reader, out io.Writer) error {
	fmt.Fprintln(out, "Ask about study topics, interview preparation or your job search. /reset clears, /quit leaves.")
	for {
		line, err := in.ReadLine("You")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		switch strings.TrimSpace(line) {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			bot.Reset()
			fmt.Fprintln(out, "Conversation cleared.")
			continue
		}
		fmt.Fprintf(out, "Assistant: %s\n", bot.Ask(ctx, line))
	}
}
