// Copyright 2014 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command mathcalc is the REPL/file front end for the evaluator: it
// reads lines, classifies each as a declaration or a query (spec.md
// §6), and prints the query results or a cursor-pointing diagnostic on
// error.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Aghajari/MathParser/builtins"
	"github.com/Aghajari/MathParser/errtax"
	"github.com/Aghajari/MathParser/eval"
	"github.com/Aghajari/MathParser/session"
)

var (
	execute    = flag.Bool("e", false, "execute arguments as a single expression")
	format     = flag.String("format", "", "printf-style format string for printing results")
	prompt     = flag.String("prompt", "", "command prompt")
	roundScale = flag.Int("round", 6, "decimal places to round results to")
	noRound    = flag.Bool("no-round", false, "disable rounding of results")
	debug      = flag.Bool("debug", false, "log each line processed at debug level")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	logrus.SetLevel(logrus.InfoLevel)
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	sess := builtins.NewSession()
	sess.Config.SetFormat(*format)
	sess.Config.SetPrompt(*prompt)
	sess.Config.SetRoundEnabled(!*noRound)
	sess.Config.SetRoundScale(*roundScale)

	if *execute {
		runArgs(sess)
		return
	}

	if flag.NArg() > 0 {
		for i := 0; i < flag.NArg(); i++ {
			name := flag.Arg(i)
			var fd io.Reader
			var err error
			interactive := name == "-"
			if interactive {
				fd = os.Stdin
			} else {
				fd, err = os.Open(name)
			}
			if err != nil {
				logrus.WithError(err).Fatalf("mathcalc: cannot open %s", name)
			}
			if !run(sess, name, bufio.NewReader(fd), os.Stdout, interactive) {
				os.Exit(1)
			}
		}
		return
	}

	reader := bufio.NewReader(os.Stdin)
	for !run(sess, "<stdin>", reader, os.Stdout, true) {
	}
}

func runArgs(sess *session.Session) {
	reader := strings.NewReader(strings.Join(flag.Args(), " "))
	if !run(sess, "<args>", bufio.NewReader(reader), os.Stdout, false) {
		os.Exit(1)
	}
}

// run processes lines from r until EOF or error, returning whether it
// completed without error.
func run(sess *session.Session, loc string, r *bufio.Reader, w io.Writer, interactive bool) (success bool) {
	success = true
	for {
		if interactive {
			fmt.Fprint(w, sess.Config.Prompt())
		}
		line, err := r.ReadString('\n')
		line = strings.TrimRight(line, "\n")
		if line != "" {
			logrus.WithField("source", loc).Debug(line)
			if err := processLine(sess, line, w); err != nil {
				fmt.Fprintln(os.Stderr, err)
				success = false
				if !interactive {
					return false
				}
			}
		}
		if err == io.EOF {
			return success
		}
		if err != nil {
			logrus.WithError(err).WithField("source", loc).Error("read failed")
			return false
		}
	}
}

func processLine(sess *session.Session, line string, w io.Writer) error {
	ok, err := sess.AddExpression(line)
	if err != nil {
		return errtax.Wrap(err, line)
	}
	if ok {
		return nil
	}
	result, err := eval.Parse(sess, line)
	if err != nil {
		return errtax.Wrap(err, line)
	}
	if f := sess.Config.Format(); f != "" {
		fmt.Fprintln(w, fmt.Sprintf(f, result))
		return nil
	}
	fmt.Fprintln(w, strconv.FormatFloat(result, 'g', -1, 64))
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: mathcalc [options] [file ...]\n")
	flag.PrintDefaults()
	os.Exit(2)
}
