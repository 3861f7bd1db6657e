package display

import (
	"fmt"
	"os"

	"github.com/backmassage/assetsort/internal/term"
)

const banner = `                     _                  _
  __ _ ___ ___  ___| |_ ___  ___  _ __| |_
 / _` + "`" + ` / __/ __|/ _ \ __/ __|/ _ \| '__| __|
| (_| \__ \__ \  __/ |_\__ \ (_) | |  | |_
 \__,_|___/___/\___|\__|___/\___/|_|   \__|
`

// PrintBanner prints the ASCII art banner; magenta when colors are enabled.
func PrintBanner() {
	fmt.Fprintln(os.Stdout, term.Paint(term.Magenta, banner))
}
