package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/png2webp/internal/config"
	"github.com/ytget/png2webp/internal/conversion"
	"github.com/ytget/png2webp/internal/convert"
	"github.com/ytget/png2webp/internal/download"
	"github.com/ytget/png2webp/internal/preview"
	"github.com/ytget/png2webp/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.png2webp"
	AppName = "PNG to WebP"

	WindowWidth  = 860
	WindowHeight = 640
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	defaults, err := config.LoadFromEnv()
	if err != nil {
		log.Printf("Ignoring config file: %v", err)
	}
	settings := config.NewSettings(defaults)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	queue := conversion.NewService(convert.NewWebPConverter(), preview.NewStore())
	downloadSvc := download.NewService(settings.GetDownloadDirectory())

	ui.NewRootUI(myWindow, settings, queue, downloadSvc)

	myWindow.ShowAndRun()
}
