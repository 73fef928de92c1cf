package commands

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/Acmi1/MS-Dos-Simulator/internal/shell"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// helpTopics are the HELP pages that are not commands.
var helpTopics = map[string][]string{
	"BATCH": {
		"Batch files are text files with a .BAT extension, one command per line.",
		"",
		"  @          Suppresses the echo of one line",
		"  ECHO OFF   Stops echoing the following lines",
		"  REM, ::    Comment lines",
		"  :label     Label lines, skipped",
		"  %0 - %9    Script name and parameters",
		"  %NAME%     Value of a session variable",
		"  CALL       Runs another batch file and returns",
		"  EXIT       Stops the current batch file",
		"",
		"Type the name of a batch file, with or without .BAT, to run it.",
		"Batch files are searched in the current directory, then in PATH.",
	},
	"REDIRECT": {
		"  command > file    Writes the output of command to file",
		"  command >> file   Appends the output of command to file",
		"  command < file    Feeds the lines of file to command",
		"  a | b             Feeds the output of a to b",
		"  > NUL             Discards the output",
	},
}

func (s *verbs) help() command {
	return command{
		spec: shell.Spec{
			Name:    "HELP",
			Summary: "Provides help information for commands.",
			Usage:   "HELP [command | BATCH | REDIRECT]",
			MaxArgs: 1,
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			topic := strings.ToUpper(inv.Arg(0))
			if topic == "" {
				return s.helpIndex(), nil
			}
			if lines, ok := helpTopics[topic]; ok {
				return lines, nil
			}
			h, ok := s.registry.Lookup(topic)
			if !ok {
				return nil, dossim.PathError(dossim.KindUnknownCommand, topic,
					"This command is not supported by the help utility - %s", topic)
			}
			return shell.HelpLines(h.Spec()), nil
		},
	}
}

func (s *verbs) helpIndex() []string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Command", "Description"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, spec := range s.registry.Specs() {
		name := spec.Name
		if len(spec.Aliases) > 0 {
			name += "/" + strings.Join(spec.Aliases, "/")
		}
		table.Append([]string{name, spec.Summary})
	}
	table.Render()

	out := []string{"For more information on a specific command, type HELP command-name.", ""}
	out = append(out, renderedLines(&buf)...)
	return append(out, "", "Other topics: HELP BATCH, HELP REDIRECT")
}

func renderedLines(buf *bytes.Buffer) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		out = append(out, strings.TrimRight(line, " "))
	}
	return out
}

func (s *verbs) ver() command {
	return command{
		spec: shell.Spec{
			Name:    "VER",
			Summary: "Displays the simulator version.",
			Usage:   "VER",
		},
		run: func(context.Context, *shell.Invocation) ([]string, error) {
			return []string{"", "MS-DOS Simulator [Version " + dossim.Version + "]", ""}, nil
		},
	}
}

func (s *verbs) vol() command {
	return command{
		spec: shell.Spec{
			Name:    "VOL",
			Summary: "Displays the disk volume label and serial number.",
			Usage:   "VOL [drive:]",
			MaxArgs: 1,
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			rest, err := stripDrive(inv.FS, inv.Arg(0))
			if err != nil {
				return nil, err
			}
			if rest != "" {
				return nil, dossim.Errorf(dossim.KindInvalidArguments, "Invalid drive specification - %s", inv.Arg(0))
			}
			return volumeLines(inv.FS), nil
		},
	}
}

func (s *verbs) date() command {
	return command{
		spec: shell.Spec{
			Name:    "DATE",
			Summary: "Displays the date.",
			Usage:   "DATE [/T]",
			Details: []string{
				"  /T  Prints only the date.",
				"The simulated clock follows the host and cannot be set.",
			},
			Switches: []string{"T"},
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			now := s.Now().Format("Mon 01-02-2006")
			if inv.Has("T") {
				return []string{now}, nil
			}
			return []string{"The current date is: " + now}, nil
		},
	}
}

func (s *verbs) time() command {
	return command{
		spec: shell.Spec{
			Name:    "TIME",
			Summary: "Displays the time.",
			Usage:   "TIME [/T]",
			Details: []string{
				"  /T  Prints only the time.",
				"The simulated clock follows the host and cannot be set.",
			},
			Switches: []string{"T"},
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			now := s.Now()
			if inv.Has("T") {
				return []string{now.Format("15:04")}, nil
			}
			return []string{"The current time is: " + now.Format("15:04:05.00")}, nil
		},
	}
}

// Conventional memory figures reported by MEM and SYS.
const (
	conventionalTotal = 655360
	conventionalUsed  = 62848
	reservedTotal     = 393216
)

func (s *verbs) mem() command {
	return command{
		spec: shell.Spec{
			Name:    "MEM",
			Summary: "Displays the amount of used and free memory and disk space.",
			Usage:   "MEM",
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			fs := inv.FS

			var buf bytes.Buffer
			table := tablewriter.NewWriter(&buf)
			table.SetHeader([]string{"Memory Type", "Total", "Used", "Free"})
			table.SetAutoFormatHeaders(false)
			table.SetBorder(false)
			table.SetCenterSeparator(" ")
			table.SetColumnSeparator(" ")
			table.SetColumnAlignment([]int{
				tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
				tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
			})
			table.Append(memRow("Conventional", conventionalTotal, conventionalUsed))
			table.Append(memRow("Upper", 0, 0))
			table.Append(memRow("Reserved", reservedTotal, reservedTotal))
			table.Append(memRow("Virtual disk", fs.Capacity(), fs.Usage()))
			table.Render()

			out := renderedLines(&buf)
			return append(out,
				"",
				fmt.Sprintf("Largest executable program size  %9s", humanize.Comma(conventionalTotal-conventionalUsed)),
				"MS-DOS is resident in the high memory area.",
			), nil
		},
	}
}

func memRow(name string, total, used int64) []string {
	return []string{name, humanize.Comma(total), humanize.Comma(used), humanize.Comma(total - used)}
}

func (s *verbs) sys() command {
	return command{
		spec: shell.Spec{
			Name:    "SYS",
			Summary: "Displays system information.",
			Usage:   "SYS",
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			fs := inv.FS
			uptime := s.Now().Sub(s.started).Truncate(1e9)
			return []string{
				"",
				"DOS-Simulator System Information:",
				"---------------------------------",
				"Processor:        Intel(R) 8086 CPU @ 8MHz",
				"Memory:           " + humanize.IBytes(conventionalTotal),
				"Operating System: MS-DOS Simulator " + dossim.Version,
				fmt.Sprintf("Disk:             %s used of %s", humanize.IBytes(uint64(fs.Usage())), humanize.IBytes(uint64(fs.Capacity()))),
				"Session:          " + inv.Session.ID().String(),
				"System Uptime:    " + uptime.String(),
			}, nil
		},
	}
}
