package appstate

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log"
	"path/filepath"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/croptag/internal/caption"
	"github.com/example/croptag/internal/clipboard"
	"github.com/example/croptag/internal/config"
	"github.com/example/croptag/internal/editor"
	"github.com/example/croptag/internal/geometry"
	"github.com/example/croptag/internal/library"
	"github.com/example/croptag/internal/notify"
	"github.com/example/croptag/internal/persist"
	"github.com/example/croptag/internal/suggest"
	"github.com/example/croptag/internal/theme"
)

// App holds the review window configuration.
type App struct {
	Session   *library.Session
	Writer    *persist.Writer
	Suggester suggest.Suggester
	Captioner caption.Captioner
	Notifier  *notify.Notifier
	Theme     *theme.Theme
	Settings  config.Settings

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an App during creation.
type Option func(*App)

// WithSession sets the image browsing session.
func WithSession(s *library.Session) Option { return func(a *App) { a.Session = s } }

// WithWriter sets the output writer used when saving crops.
func WithWriter(w *persist.Writer) Option { return func(a *App) { a.Writer = w } }

// WithSuggester sets the crop suggestion provider.
func WithSuggester(s suggest.Suggester) Option { return func(a *App) { a.Suggester = s } }

// WithCaptioner sets the caption provider.
func WithCaptioner(c caption.Captioner) Option { return func(a *App) { a.Captioner = c } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.Notifier = n } }

// WithTheme sets the UI colours.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.Theme = t } }

// WithSettings supplies the loaded settings.
func WithSettings(cfg config.Settings) Option { return func(a *App) { a.Settings = cfg } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App with the provided options.
func New(opts ...Option) *App {
	a := &App{
		Suggester: suggest.Disabled{},
		Captioner: caption.Disabled{},
		Theme:     theme.Default(),
		Settings:  *config.Default(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *App) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

func (a *App) Main(s screen.Screen) {
	session := a.Session
	if session == nil {
		log.Fatal("review window requires a session")
	}

	width := a.Settings.CropSize + 256
	height := a.Settings.CropSize + statusHeight + captionHeight + 128
	if width < 640 {
		width = 640
	}
	if height < 480 {
		height = 480
	}
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Croptag"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	defer a.notifyClose()

	var (
		img          *image.RGBA
		crop         *geometry.CropBox
		scale        float64
		captionText  string
		editingText  string
		editing      bool
		message      string
		messageUntil time.Time
		confirmQuit  bool
	)

	ctrl := editor.New(nil, 1, editor.WithChangeListener(func(geometry.Box) {
		w.Send(paint.Event{})
	}))

	showMessage := func(msg string) {
		message = msg
		log.Print(message)
		messageUntil = time.Now().Add(2 * time.Second)
	}

	refit := func() {
		if img == nil {
			return
		}
		b := img.Bounds()
		scale = fitScale(b.Dx(), b.Dy(), width, height)
		if crop != nil {
			ctrl.Attach(crop, scale)
		}
	}

	loadCurrent := func() {
		src, err := session.Load()
		if err != nil {
			log.Printf("load %s: %v", session.Path(), err)
			showMessage(fmt.Sprintf("cannot load %s", filepath.Base(session.Path())))
			img = image.NewRGBA(image.Rect(0, 0, 1, 1))
			crop = nil
			refit()
			return
		}
		rgba := image.NewRGBA(src.Bounds())
		draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
		img = rgba

		bounds := geometry.Bounds{Width: rgba.Bounds().Dx(), Height: rgba.Bounds().Dy()}
		sideMax := bounds.Width
		if bounds.Height < sideMax {
			sideMax = bounds.Height
		}

		var suggestion *geometry.Box
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if box, ok, err := a.Suggester.Suggest(ctx, src, sideMax); err != nil {
			log.Printf("suggest %s: %v", session.Stem(), err)
		} else if ok {
			suggestion = &box
		}
		cancel()

		crop, err = geometry.New(bounds, a.Settings.CropSize, suggestion,
			geometry.WithMinSide(a.Settings.MinSide))
		if err != nil {
			log.Printf("crop init %s: %v", session.Stem(), err)
			crop = nil
		}

		phrase := ""
		ctx, cancel = context.WithTimeout(context.Background(), 2*time.Minute)
		if text, err := a.Captioner.Caption(ctx, src); err != nil {
			log.Printf("caption %s: %v", session.Stem(), err)
		} else {
			phrase = text
		}
		cancel()
		captionText = caption.Compose(a.Settings.GlobalTags, phrase)

		editing = false
		refit()
	}

	saveCurrent := func() bool {
		if crop == nil {
			showMessage("nothing to save")
			return false
		}
		text := caption.EnsureTags(captionText, a.Settings.GlobalTags)
		path, err := a.Writer.Save(img, crop.Current(), session.Stem(), text)
		if err != nil {
			log.Printf("save %s: %v", session.Stem(), err)
			showMessage("save failed")
			return false
		}
		session.MarkSaved()
		if a.Notifier != nil {
			a.Notifier.Save(path)
		}
		showMessage(fmt.Sprintf("saved %s", filepath.Base(path)))
		return true
	}

	statusLine := func() string {
		saved := ""
		if session.Saved() {
			saved = " [saved]"
		}
		return fmt.Sprintf("Croptag  [%d/%d] %s%s  (%d saved)",
			session.Index()+1, session.Len(), filepath.Base(session.Path()), saved,
			session.SavedCount())
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
		}
	}()

	stopPainting := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	loadCurrent()

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPainting()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			refit()
			w.Send(paint.Event{})
		case paint.Event:
			if img == nil {
				continue
			}
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			var box geometry.Box
			if crop != nil {
				box = crop.Current()
			}
			text := captionText
			if editing {
				text = editingText
			}
			st := paintState{
				width:          width,
				height:         height,
				img:            img,
				scale:          scale,
				box:            box,
				statusLine:     statusLine(),
				captionText:    text,
				captionEditing: editing,
				message:        message,
				messageUntil:   messageUntil,
				theme:          a.Theme,
			}
			select {
			case paintCh <- st:
			default:
				<-paintCh
				paintCh <- st
			}
		case mouse.Event:
			if message != "" && time.Now().Before(messageUntil) && e.Direction == mouse.DirPress {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
				continue
			}
			if int(e.Y) >= height-captionHeight {
				if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress && !editing {
					editing = true
					editingText = captionText
					w.Send(paint.Event{})
				}
				continue
			}
			if int(e.Y) < statusHeight || img == nil || crop == nil {
				continue
			}

			ib := img.Bounds()
			dst := imageRect(ib.Dx(), ib.Dy(), width, height, scale)
			px := float64(e.X) - float64(dst.Min.X)
			py := float64(e.Y) - float64(dst.Min.Y)

			switch {
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
				if ctrl.Press(px, py) {
					w.Send(paint.Event{})
				}
			case e.Direction == mouse.DirNone:
				if ctrl.Drag(px, py) {
					w.Send(paint.Event{})
				}
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
				ctrl.Drag(px, py)
				ctrl.Release()
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if editing {
				switch e.Code {
				case key.CodeReturnEnter:
					captionText = editingText
					editing = false
					w.Send(paint.Event{})
					continue
				case key.CodeEscape:
					editing = false
					w.Send(paint.Event{})
					continue
				case key.CodeDeleteBackspace:
					if len(editingText) > 0 {
						editingText = editingText[:len(editingText)-1]
						w.Send(paint.Event{})
					}
					continue
				}
				if e.Rune > 0 && unicode.IsPrint(e.Rune) {
					editingText += string(e.Rune)
					w.Send(paint.Event{})
				}
				continue
			}

			if unicode.ToLower(e.Rune) == 'c' && e.Modifiers&key.ModControl != 0 {
				confirmQuit = false
				if err := clipboard.WriteText(captionText); err != nil {
					log.Printf("copy caption: %v", err)
					showMessage("copy failed")
				} else {
					if a.Notifier != nil {
						a.Notifier.Copy(session.Stem())
					}
					showMessage("caption copied to clipboard")
				}
				w.Send(paint.Event{})
				continue
			}

			switch e.Code {
			case key.CodeReturnEnter:
				confirmQuit = false
				if saveCurrent() {
					if session.AllSaved() {
						stopPainting()
						return
					}
					if session.Next() {
						loadCurrent()
					}
				}
				w.Send(paint.Event{})
				continue
			case key.CodeLeftArrow:
				confirmQuit = false
				if session.Prev() {
					loadCurrent()
					w.Send(paint.Event{})
				}
				continue
			case key.CodeRightArrow:
				confirmQuit = false
				if session.Next() {
					loadCurrent()
					w.Send(paint.Event{})
				}
				continue
			case key.CodeEscape:
				confirmQuit = false
				w.Send(paint.Event{})
				continue
			}

			switch unicode.ToLower(e.Rune) {
			case 's':
				confirmQuit = false
				if session.Next() {
					loadCurrent()
					w.Send(paint.Event{})
				} else {
					showMessage("last image")
					w.Send(paint.Event{})
				}
			case 'e':
				confirmQuit = false
				editing = true
				editingText = captionText
				w.Send(paint.Event{})
			case 'q':
				if !session.AllSaved() && !confirmQuit {
					confirmQuit = true
					remaining := session.Len() - session.SavedCount()
					showMessage(fmt.Sprintf("%d images not saved, press Q again to quit", remaining))
					w.Send(paint.Event{})
					continue
				}
				stopPainting()
				return
			}
		}
	}
}
