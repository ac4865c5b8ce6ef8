package effects

import (
	"strings"

	"github.com/lixenwraith/hollywood/core"
	"github.com/lixenwraith/hollywood/plugin"
	"github.com/lixenwraith/hollywood/render"
)

// CodeSnippets is the pool the code effect types from
var CodeSnippets = []string{
	"void inject_payload(int *target) {",
	"    if (target == NULL) return;",
	"    *target = 0xDEADBEEF;",
	"    flush_cache();",
	"}",
	"class NeuralNet {",
	"    constructor(layers) {",
	"        this.weights = new Matrix(layers);",
	"    }",
	"    train(data) {",
	"        return this.backprop(data);",
	"    }",
	"}",
	"section .text",
	"global _start",
	"_start:",
	"    mov eax, 4",
	"    mov ebx, 1",
	"    mov ecx, msg",
	"    mov edx, len",
	"    int 0x80",
	"for (i = 0; i < MAX_NODES; i++) {",
	"    node[i].status = COMPROMISED;",
	"}",
	"// DECRYPTING BLOCK A...",
	"// KEY_FOUND: 0x9F2A",
	"// REROUTING PROXY...",
	"git push --force origin mainframe",
	"sudo rm -rf /var/log/audit",
}

const (
	codePrefill   = 10
	codeMaxLines  = 30
	codePauseSec  = 0.2
	codeTypeSec   = 0.03
	codePauseOdds = 0.2
)

// Code types indented source lines and scrolls once the window fills
type Code struct {
	canvas
	lines []string
	next  core.Timer
}

// NewCode creates the code typing effect
func NewCode() *Code {
	return &Code{}
}

func (c *Code) Init(ctx plugin.Context) error {
	if err := c.bind(ctx); err != nil {
		return err
	}
	c.lines = c.lines[:0]
	for range codePrefill {
		c.push()
	}
	c.next = core.NewTimer(codeTypeSec)
	return nil
}

func (c *Code) push() {
	indent := strings.Repeat("  ", c.intn(4))
	c.lines = append(c.lines, indent+CodeSnippets[c.intn(len(CodeSnippets))])
	if over := len(c.lines) - codeMaxLines; over > 0 {
		c.lines = c.lines[over:]
	}
}

func (c *Code) Update(dt float64, _ plugin.AuxState) error {
	var fired bool
	if c.next, fired = c.next.Step(dt); fired {
		c.push()
		if c.rand() < codePauseOdds {
			c.next.Period = codePauseSec
		} else {
			c.next.Period = codeTypeSec
		}
	}

	// Newest lines stay in view when the history outgrows the window
	start := max(len(c.lines)-c.h, 0)
	for y, line := range c.lines[start:] {
		fg := render.RGBPhosphorMid
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			fg = render.RGBPhosphorDim
		}
		c.vp.Text(0, y, line, fg)
	}
	return nil
}
