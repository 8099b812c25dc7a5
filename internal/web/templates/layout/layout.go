// Package layout holds the page shell shared by every HTML page.
package layout

const siteName = "Tic-Tac-Toe"

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// PageData carries what the shell needs to render
type PageData struct {
	Title string
	Flash *FlashMessage
}

func pageTitle(title string) string {
	if title == "" {
		return siteName
	}
	return title + " | " + siteName
}
