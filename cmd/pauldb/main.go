// Command pauldb is a thin CLI front-end over the pauldb façade, mirroring
// cmd/mysqldef/mysqldef.go's flag parsing and password-prompt shape even
// though PaulDB, being embedded, has no server connection to authenticate
// against.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"syscall"

	flags "github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/pcardune/pauldb"
	"github.com/pcardune/pauldb/memstore"
	"github.com/pcardune/pauldb/pauldblog"
)

var version string

type options struct {
	File    string `long:"file" description:"Read SQL from the file, rather than stdin" value-name:"sql_file" default:"-"`
	Prompt  bool   `long:"prompt" description:"Read one statement from an interactive terminal prompt instead of a file/stdin"`
	Debug   bool   `long:"debug" description:"Pretty-print the result with k0kubun/pp instead of fmt"`
	Export  bool   `long:"export" description:"Dump the in-memory database's current schema instead of executing SQL"`
	Config  string `long:"config" description:"YAML file of CLI defaults" value-name:"config_file"`
	Help    bool   `long:"help" description:"Show this help"`
	Version bool   `long:"version" description:"Show this version"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[options]"
	if _, err := parser.ParseArgs(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	if opts.Help {
		parser.WriteHelp(os.Stdout)
		return
	}
	if opts.Version {
		fmt.Println(version)
		return
	}

	pauldblog.Init()

	if opts.Config != "" {
		if _, err := loadConfig(opts.Config); err != nil {
			log.Fatalf("reading config %s: %s", opts.Config, err)
		}
	}

	db := pauldb.Open(memstore.New()).WithLogger(pauldblog.StdoutLogger{})

	if opts.Export {
		printResult(exportSchemas(db), opts.Debug)
		return
	}

	sql, err := readSQL(opts)
	if err != nil {
		log.Fatal(err)
	}

	result, err := db.Execute(sql)
	if err != nil {
		log.Fatal(err)
	}
	printResult(result, opts.Debug)
}

func printResult(result any, debug bool) {
	if debug {
		pp.Println(result)
		return
	}
	fmt.Printf("%v\n", result)
}

// readSQL reads the SQL to execute either from --file (or stdin when it is
// "-", the default) or, with --prompt, from a single interactive line read
// via term.ReadPassword the way psqldef/mysqldef read a DB password.
func readSQL(opts options) (string, error) {
	if opts.Prompt {
		if !term.IsTerminal(int(syscall.Stdin)) {
			return "", fmt.Errorf("--prompt requires an interactive terminal")
		}
		fmt.Print("pauldb> ")
		line, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(line), nil
	}

	if opts.File == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(opts.File)
	return string(data), err
}
