package message

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/aripalo/go-delightful"
	"github.com/enescakir/emoji"
	"github.com/mattn/go-isatty"
)

var message = delightful.New("cursor-id-reset")

// Sink is where operator-facing output goes. Core packages receive one by
// injection so they can be exercised without a console.
type Sink interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warning(format string, args ...any)
	Success(format string, args ...any)
	Error(format string, args ...any)
	Title(format string, args ...any)
	Plain(format string, args ...any)
}

// Default is the console sink used by the package level helpers.
var Default Sink = Console{}

func SetSilentMode(flag bool) {
	message.SetSilentMode(flag)
}

func SetVerboseMode(flag bool) {
	message.SetVerboseMode(flag)
}

func SetEmojiMode(flag bool) {
	message.SetEmojiMode(flag)
}

func SetColorMode(flag bool) {
	message.SetColorMode(flag)
}

// Console writes through go-delightful.
type Console struct{}

func (Console) Debug(format string, args ...any) {
	message.Debugln(emoji.HammerAndWrench, fmt.Sprintf(format, args...))
}

func (Console) Info(format string, args ...any) {
	message.Infoln(emoji.Information, fmt.Sprintf(format, args...))
}

func (Console) Warning(format string, args ...any) {
	message.Warningln(emoji.Warning, fmt.Sprintf(format, args...))
}

func (Console) Success(format string, args ...any) {
	message.Infoln(emoji.CheckMarkButton, fmt.Sprintf(format, args...))
}

func (Console) Error(format string, args ...any) {
	message.Failureln(emoji.CrossMark, fmt.Sprintf(format, args...))
}

func (Console) Title(format string, args ...any) {
	message.Titleln(emoji.Key, fmt.Sprintf(format, args...))
}

func (Console) Plain(format string, args ...any) {
	message.Infoln("", fmt.Sprintf(format, args...))
}

func Debug(format string, args ...any) {
	Default.Debug(format, args...)
}

func Warning(format string, args ...any) {
	Default.Warning(format, args...)
}

func Info(format string, args ...any) {
	Default.Info(format, args...)
}

func Success(format string, args ...any) {
	Default.Success(format, args...)
}

func Error(format string, args ...any) {
	Default.Error(format, args...)
}

func Plain(format string, args ...any) {
	Default.Plain(format, args...)
}

func Banner(title string, lines ...string) {
	message.HorizontalRuler()
	message.Titleln(emoji.Key, title)
	for _, line := range lines {
		message.Infoln("", line)
	}
	message.HorizontalRuler()
}

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func BoolSelect(message string) (bool, error) {
	var answer bool
	prompt := &survey.Confirm{
		Message: message,
	}

	err := survey.AskOne(prompt, &answer)
	if err != nil {
		return false, fmt.Errorf("failed to ask question: %w", err)
	}

	return answer, nil
}

// WaitForEnter blocks until the operator presses enter. It returns
// immediately when there is no terminal to read from.
func WaitForEnter(message string) error {
	if !IsInteractive() {
		return nil
	}

	var answer string
	prompt := &survey.Input{
		Message: message,
	}

	err := survey.AskOne(prompt, &answer)
	if err != nil {
		return fmt.Errorf("failed to ask question: %w", err)
	}

	return nil
}
