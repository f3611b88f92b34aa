package ui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

const bannerText = `
     ██╗ ██████╗ ██████╗ ██████╗  ██████╗  █████╗ ██████╗ ██████╗
     ██║██╔═══██╗██╔══██╗██╔══██╗██╔═══██╗██╔══██╗██╔══██╗██╔══██╗
     ██║██║   ██║██████╔╝██████╔╝██║   ██║███████║██████╔╝██║  ██║
██   ██║██║   ██║██╔══██╗██╔══██╗██║   ██║██╔══██║██╔══██╗██║  ██║
╚█████╔╝╚██████╔╝██████╔╝██████╔╝╚██████╔╝██║  ██║██║  ██║██████╔╝
 ╚════╝  ╚═════╝ ╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝
`

// ColorizeText fades text between two random colors
func ColorizeText(text string) string {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	firstPoint := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	runes := []rune(text)
	half := max(len(runes)/2, 1)

	var b strings.Builder
	for i, r := range runes {
		b.WriteString(startColor.Fade(0, float32(len(runes)), float32(i%half), firstPoint).Sprint(string(r)))
	}
	return b.String()
}

// PrintBanner displays the application banner
func PrintBanner(w io.Writer, silence bool) {
	if silence {
		return
	}
	fmt.Fprintln(w, ColorizeText(bannerText))
}

// FormatURL formats a URL, optionally as a clickable terminal hyperlink using OSC 8 escape sequence
func FormatURL(url string, useHyperlink bool) string {
	if !useHyperlink || url == "" {
		return url
	}
	// \a (BEL) terminates the sequence for wider compatibility
	return fmt.Sprintf("\033]8;;%s\a%s\033]8;;\a", url, "Apply")
}

// ColorizeRemote labels a job's remote flag.
func ColorizeRemote(remote bool) string {
	if remote {
		return pterm.Green("Remote")
	}
	return pterm.Yellow("On-site")
}

// ColorizeJobType colors the job type by commitment.
func ColorizeJobType(jobType string) string {
	switch jobType {
	case "":
		return pterm.Gray("-")
	case "Full-time":
		return pterm.Green(jobType)
	case "Part-time", "Contract", "Freelance":
		return pterm.LightBlue(jobType)
	default:
		return pterm.Yellow(jobType)
	}
}

// BookmarkMark is the marker shown next to saved jobs.
func BookmarkMark(bookmarked bool) string {
	if bookmarked {
		return pterm.LightMagenta("★")
	}
	return " "
}
