package viewer

import (
	"fmt"
	"strings"
)

// title builds the window title from the scene caption, the hovered
// equipment label and the frame rate.
func title(caption, hovered string, fps int, showFPS bool) string {
	parts := []string{Title, caption}
	if hovered != "" {
		parts = append(parts, hovered)
	}
	if showFPS && fps > 0 {
		parts = append(parts, fmt.Sprintf("%d fps", fps))
	}
	return strings.Join(parts, " | ")
}
