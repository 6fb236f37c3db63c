package rod

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 75

// browser owns a headless Chrome process and replaces it after maxPages
// pages. Chrome's memory baseline keeps growing over a long crawl even when
// every page is closed, and a fresh process is the only way back down.
type browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	maxPages int
}

func launchBrowser(maxPages int) (*browser, error) {
	b := &browser{maxPages: maxPages}
	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

// current returns the browser to open the next page in, recycling it first
// if the page budget is spent.
func (b *browser) current() *rod.Browser {
	if b.maxPages > 0 && b.pages >= b.maxPages {
		b.recycle()
	}
	b.pages++
	return b.browser
}

func (b *browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	rb := rod.New().ControlURL(u)
	if err := rb.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = rb
	b.launcher = l
	return nil
}

// recycle starts a fresh browser and closes the old one.
// If launching fails the old browser is kept.
func (b *browser) recycle() {
	old, oldLauncher := b.browser, b.launcher
	if err := b.launch(); err != nil {
		b.browser, b.launcher = old, oldLauncher
		return
	}
	_ = old.Close()
	oldLauncher.Kill()
	b.pages = 0
}

func (b *browser) close() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

func (b *browser) pid() int {
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
