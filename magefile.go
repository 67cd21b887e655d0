//go:build mage

// Copyright 2021-2022
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName   = "pv-mpt"
	modulePath   = "github.com/penny-vault/pv-mpt"
	coverProfile = "coverage.out"
)

// goexe may be overridden with GOEXE=xxx mage ...
var goexe = "go"

func init() {
	if exe := os.Getenv("GOEXE"); exe != "" {
		goexe = exe
	}
}

// Build compiles pv-mpt with the commit hash and build date stamped in
func Build() error {
	fmt.Println("Building", binaryName)
	return sh.RunWith(versionEnv(), goexe, "build", "-o", binaryName, "-ldflags", ldflags(), ".")
}

// Install puts pv-mpt in $GOPATH/bin
func Install() error {
	return sh.RunWith(versionEnv(), goexe, "install", "-ldflags", ldflags(), ".")
}

func Clean() {
	fmt.Println("Cleaning...")
	os.RemoveAll(binaryName)
	os.RemoveAll(coverProfile)
}

// Check runs the formatter, vet and the race enabled test suites
func Check() {
	mg.SerialDeps(Fmt, Vet, TestRace)
}

// Test runs every ginkgo suite
func Test() error {
	fmt.Println("Go Test")
	return run(goexe, "test", "./...")
}

// TestRace runs every ginkgo suite with the race detector; the analysis
// pipeline and the price fetcher are concurrent
func TestRace() error {
	fmt.Println("Go Test Race")
	return run(goexe, "test", "-race", "./...")
}

// Cover prints per-function coverage for the numeric core
func Cover() error {
	fmt.Println("Go Cover")

	pkgs := []string{"./matrix/...", "./stats/...", "./portfolio/...", "./data/...", "./analysis/..."}
	args := append([]string{"test", "-covermode=count", "-coverprofile=" + coverProfile}, pkgs...)
	if err := run(goexe, args...); err != nil {
		return err
	}
	return sh.RunV(goexe, "tool", "cover", "-func="+coverProfile)
}

// Fmt fails if any file needs gofmt
func Fmt() error {
	fmt.Println("Go Format")

	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}

	var unformatted []string
	for _, fn := range strings.Split(out, "\n") {
		if fn != "" && !strings.HasPrefix(fn, "_") {
			unformatted = append(unformatted, fn)
		}
	}

	if len(unformatted) > 0 {
		fmt.Println("The following files are not gofmt'ed:")
		fmt.Println(strings.Join(unformatted, "\n"))
		return errors.New("improperly formatted go files")
	}
	return nil
}

func Vet() error {
	fmt.Println("Go Vet")
	if err := sh.Run(goexe, "vet", "./..."); err != nil {
		return fmt.Errorf("error running go vet: %w", err)
	}
	return nil
}

// Helpers

func ldflags() string {
	return fmt.Sprintf("-X %[1]s/common.commitHash=$COMMIT_HASH -X %[1]s/common.buildDate=$BUILD_DATE", modulePath)
}

func versionEnv() map[string]string {
	hash, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	return map[string]string{
		"COMMIT_HASH": hash,
		"BUILD_DATE":  time.Now().Format("2006-01-02T15:04:05Z0700"),
	}
}

// run hides the output of cmd unless it fails or mage runs verbose
func run(cmd string, args ...string) error {
	if mg.Verbose() {
		return sh.RunV(cmd, args...)
	}

	out, err := sh.Output(cmd, args...)
	if err != nil {
		fmt.Fprintln(os.Stderr, out)
	}
	return err
}
