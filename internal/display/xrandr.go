package display

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

// e.g. "eDP-1 connected primary 1920x1200+0+1080 (normal left ...) 290mm x 180mm"
var xrandrOutputRe = regexp.MustCompile(`^(\S+) connected( primary)? (\d+)x(\d+)([+-]\d+)([+-]\d+)`)

// parseXrandr extracts the active outputs from `xrandr --query`. Connected
// outputs without a mode are switched off and skipped.
func parseXrandr(output string) ([]DisplayInfo, error) {
	var displays []DisplayInfo

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			// mode lines are indented
			continue
		}

		m := xrandrOutputRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		w, _ := strconv.Atoi(m[3])
		h, _ := strconv.Atoi(m[4])
		x, _ := strconv.Atoi(m[5])
		y, _ := strconv.Atoi(m[6])

		bounds := Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
		displays = append(displays, DisplayInfo{
			ID:       m[1],
			Bounds:   bounds,
			WorkArea: bounds,
			Primary:  m[2] != "",
		})
	}
	return displays, scanner.Err()
}
