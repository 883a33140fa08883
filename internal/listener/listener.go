package listener

import (
	"fmt"
	"strings"
	"sync"

	"github.com/chzyer/readline"
)

var rl *readline.Instance
var mu sync.Mutex

// Init must not be called while a child owns the terminal.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	var err error
	rl, err = readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "",
		EOFPrompt:       "",
	})
	return err
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	if rl != nil {
		_ = rl.Close()
		rl = nil
	}
}

func PrintAbove(s string) {
	mu.Lock()
	defer mu.Unlock()
	if rl == nil {
		fmt.Println(s)
		return
	}
	_, _ = rl.Write([]byte(s + "\n"))
	rl.Refresh()
}

func GetConfirmation(prompt string) string {
	mu.Lock()
	if rl == nil {
		mu.Unlock()
		return ""
	}
	old := rl.Config.Prompt
	rl.SetPrompt(prompt)
	mu.Unlock()

	line, err := rl.Readline()
	if err != nil {
		line = ""
	}
	ans := strings.TrimSpace(strings.ToLower(line))

	mu.Lock()
	if rl != nil {
		rl.SetPrompt(old)
	}
	mu.Unlock()
	return ans
}

// parseYesNo reports the answer and whether it was understood.
func parseYesNo(ans string) (bool, bool) {
	switch strings.TrimSpace(strings.ToLower(ans)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

// AskYesNo keeps asking until it gets a y/n answer. EOF or an interrupt counts as no.
func AskYesNo(question string) bool {
	PrintAbove(question + " [y/n]")

	for {
		ans := GetConfirmation("> ")
		if ans == "" {
			return false
		}
		if v, ok := parseYesNo(ans); ok {
			return v
		}
		PrintAbove("Please answer y/n.")
	}
}

// Confirm opens the prompt for a single question and releases the terminal again.
func Confirm(question string) (bool, error) {
	if err := Init(); err != nil {
		return false, fmt.Errorf("failed to init terminal input: %w", err)
	}
	defer Close()
	return AskYesNo(question), nil
}
