// Copyright 2025 Ian Lewis
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

package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/ianlewis/go-glossary"
)

// A4 paper size and margins in inches.
const (
	a4Width  = 8.27
	a4Height = 11.69
	margin   = 1.0
)

var errNoBrowser = errors.New("no Chrome or Chromium browser found")

// InCI reports whether the process appears to be running in a CI
// environment.
func InCI() bool {
	_, ciName := os.LookupEnv("CI_NAME")
	return os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true" || ciName
}

// FindBrowser returns the path to the configured or installed browser.
func FindBrowser(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", fmt.Errorf("%w: %w", errNoBrowser, err)
		}
		return configured, nil
	}
	if bin, ok := launcher.LookPath(); ok {
		return bin, nil
	}
	return "", errNoBrowser
}

type pdfRenderer struct {
	opts Options
}

// Render implements Renderer. The HTML page is printed to PDF by a headless
// browser.
func (r *pdfRenderer) Render(ctx context.Context, g *glossary.Glossary, path string) (err error) {
	content, err := HTMLBytes(g, r.opts)
	if err != nil {
		return err
	}

	bin, err := FindBrowser(r.opts.Browser)
	if err != nil {
		return err
	}

	l := launcher.New().
		Context(ctx).
		Bin(bin).
		Headless(true).
		NoSandbox(r.opts.NoSandbox || InCI())
	defer l.Cleanup()

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connecting to browser: %w", err)
	}
	defer func() {
		err = errors.Join(err, browser.Close())
	}()

	p, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("opening page: %w", err)
	}
	if err := p.SetDocumentContent(string(content)); err != nil {
		return fmt.Errorf("setting page content: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("loading page: %w", err)
	}

	stream, err := p.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      gson.Num(a4Width),
		PaperHeight:     gson.Num(a4Height),
		MarginTop:       gson.Num(margin),
		MarginRight:     gson.Num(margin),
		MarginBottom:    gson.Num(margin),
		MarginLeft:      gson.Num(margin),
	})
	if err != nil {
		return fmt.Errorf("printing pdf: %w", err)
	}

	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if _, err := io.Copy(f, stream); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
