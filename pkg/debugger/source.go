package debugger

import (
	"bufio"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
)

// Source yields operator command lines one at a time, already split on
// semicolons and newlines and trimmed. Read returns false on end-of-input,
// which the debugger treats as an implicit quit.
type Source interface {
	Read() (line string, ok bool)
	Close()
}

// splitLine breaks one physical input line into commands on semicolons and
// newlines, dropping empty pieces.
func splitLine(line string) []string {
	pieces := strings.FieldsFunc(line, func(r rune) bool {
		return r == ';' || r == '\n'
	})
	commands := pieces[:0]
	for _, piece := range pieces {
		if piece = strings.TrimSpace(piece); piece != "" {
			commands = append(commands, piece)
		}
	}
	return commands
}

// ScriptSource replays a pre-recorded command script, as supplied on the
// command line. It never blocks.
type ScriptSource struct {
	pending []string
}

// NewScriptSource splits a script into commands.
func NewScriptSource(script string) *ScriptSource {
	return &ScriptSource{pending: splitLine(script)}
}

func (s *ScriptSource) Read() (string, bool) {
	if len(s.pending) == 0 {
		return "", false
	}
	line := s.pending[0]
	s.pending = s.pending[1:]
	return line, true
}

func (s *ScriptSource) Close() {}

// ScannerSource reads commands from a non-interactive stream, such as a
// redirected stdin.
type ScannerSource struct {
	scanner *bufio.Scanner
	pending []string
}

// NewScannerSource wraps a reader.
func NewScannerSource(r io.Reader) *ScannerSource {
	return &ScannerSource{scanner: bufio.NewScanner(r)}
}

func (s *ScannerSource) Read() (string, bool) {
	for len(s.pending) == 0 {
		if !s.scanner.Scan() {
			return "", false
		}
		s.pending = splitLine(s.scanner.Text())
	}
	line := s.pending[0]
	s.pending = s.pending[1:]
	return line, true
}

func (s *ScannerSource) Close() {}

// TerminalSource prompts on an interactive terminal with line editing,
// history and command completion.
type TerminalSource struct {
	liner   *liner.State
	prompt  string
	pending []string
	last    string
}

// NewTerminalSource sets up the readline state. Callers must Close it to
// restore the terminal.
func NewTerminalSource(prompt string) *TerminalSource {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeCommand)
	return &TerminalSource{liner: line, prompt: prompt}
}

func (s *TerminalSource) Read() (string, bool) {
	for len(s.pending) == 0 {
		input, err := s.liner.Prompt(s.prompt)
		if err == io.EOF {
			return "", false
		}
		if err == liner.ErrPromptAborted {
			color.New(color.FgYellow).Println("use `quit` or `exit` to leave the debugger")
			continue
		}
		if err != nil {
			return "", false
		}

		input = strings.TrimSpace(input)
		if input == "" {
			// An empty line repeats the previous command
			input = s.last
		}
		if input == "" {
			continue
		}
		if input != s.last {
			s.liner.AppendHistory(input)
		}
		s.last = input
		s.pending = splitLine(input)
	}
	line := s.pending[0]
	s.pending = s.pending[1:]
	return line, true
}

func (s *TerminalSource) Close() {
	s.liner.Close()
}

func completeCommand(input string) []string {
	var completions []string
	lowered := strings.ToLower(input)
	for _, entry := range commandAliases {
		for _, alias := range entry.aliases {
			if strings.HasPrefix(alias, lowered) {
				completions = append(completions, alias)
			}
		}
	}
	return completions
}

// MultiSource drains sources in order: a pre-supplied script first, then
// the interactive terminal.
type MultiSource struct {
	sources []Source
}

// NewMultiSource chains sources.
func NewMultiSource(sources ...Source) *MultiSource {
	return &MultiSource{sources: sources}
}

func (m *MultiSource) Read() (string, bool) {
	for len(m.sources) > 0 {
		if line, ok := m.sources[0].Read(); ok {
			return line, true
		}
		m.sources[0].Close()
		m.sources = m.sources[1:]
	}
	return "", false
}

func (m *MultiSource) Close() {
	for _, source := range m.sources {
		source.Close()
	}
	m.sources = nil
}
