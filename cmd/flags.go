package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/duewatch/internal/clierr"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
)

// priorityValue is a pflag.Value that only accepts known priorities.
type priorityValue struct {
	p *task.Priority
}

var _ pflag.Value = (*priorityValue)(nil)

func newPriorityValue(p *task.Priority) *priorityValue {
	return &priorityValue{p: p}
}

func (v *priorityValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *priorityValue) Set(s string) error {
	p, err := task.ValidatePriority(s)
	if err != nil {
		return err
	}
	*v.p = p
	return nil
}

func (v *priorityValue) Type() string {
	return "priority"
}

// priorityFlagUsage lists the accepted values for help output.
func priorityFlagUsage(prefix string) string {
	names := make([]string, len(task.Priorities))
	for i, p := range task.Priorities {
		names[i] = string(p)
	}
	return prefix + " (" + strings.Join(names, ", ") + ")"
}

// flagError keeps structured errors raised by custom flag values and tags
// every other parse failure as invalid input.
func flagError(_ *cobra.Command, err error) error {
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		return cliErr
	}
	return clierr.New(clierr.InvalidInput, err.Error())
}

func init() {
	rootCmd.SetFlagErrorFunc(flagError)
}
