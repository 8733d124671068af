package cmd

import "strings"

// flagSpec describes how a long flag consumes its values.
type flagSpec struct {
	name    string // canonical long name
	multi   bool   // takes every following non-flag argument
	noValue bool   // takes no value
}

var legacyFlags = map[string]flagSpec{
	"test":      {name: "test", multi: true},
	"f":         {name: "dotfile", multi: true},
	"dotfile":   {name: "dotfile", multi: true},
	"include":   {name: "include", multi: true},
	"sim":       {name: "sim"},
	"main":      {name: "main"},
	"define":    {name: "define"},
	"vpi":       {name: "vpi"},
	"config":    {name: "config"},
	"log-level": {name: "log-level"},
	"workdir":   {name: "workdir"},
	"gui":       {name: "gui", noValue: true},
	"dry-run":   {name: "dry-run", noValue: true},
	"strict":    {name: "strict", noValue: true},
}

// NormalizeArgs rewrites the historical svut command line into the form
// cobra parses:
//
//	-test a.sv b.sv   ->  --test=a.sv --test=b.sv
//	-f a.f b.f        ->  --dotfile=a.f --dotfile=b.f
//	-vpi "-M. -mX"    ->  --vpi=-M. -mX
//	-dry-run          ->  --dry-run
//
// Single-valued flags always bind the next argument, even when it starts
// with a dash. Multi-valued flags take arguments up to the next one that
// starts with a dash, a lone "-" included; with no values the flag is
// dropped and its default applies. Unknown arguments and everything after
// "--" pass through.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}

		name, value, hasValue, ok := splitFlag(arg)
		if !ok {
			out = append(out, arg)
			continue
		}
		spec, known := legacyFlags[name]
		if !known {
			out = append(out, arg)
			continue
		}
		flag := "--" + spec.name

		switch {
		case hasValue:
			out = append(out, flag+"="+value)
		case spec.noValue:
			out = append(out, flag)
		case spec.multi:
			for i+1 < len(args) && !isFlagLike(args[i+1]) && args[i+1] != "-" {
				i++
				out = append(out, flag+"="+args[i])
			}
		case i+1 < len(args):
			i++
			out = append(out, flag+"="+args[i])
		default:
			// missing value; let cobra report it
			out = append(out, flag)
		}
	}

	return out
}

// splitFlag parses "-name", "--name", and their "=value" forms.
func splitFlag(arg string) (name, value string, hasValue, ok bool) {
	if !isFlagLike(arg) {
		return "", "", false, false
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
	if trimmed == "" {
		return "", "", false, false
	}
	name, value, hasValue = strings.Cut(trimmed, "=")
	return name, value, hasValue, true
}

func isFlagLike(arg string) bool {
	return len(arg) > 1 && strings.HasPrefix(arg, "-")
}
