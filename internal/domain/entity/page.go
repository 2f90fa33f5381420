package entity

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// ScreenSize is the area available to the browser window.
type ScreenSize struct {
	Width  int
	Height int
}
