package xl

import "strconv"

// rowTemplate holds the row attributes shared by every row written at one
// outline depth and visibility.
type rowTemplate struct {
	level  string // outlineLevel attribute, empty at depth 0
	hidden bool
}

// outlineCache hands out one rowTemplate per (depth, hidden) pair. Slots are
// filled the first time a depth is reached.
type outlineCache struct {
	levels [][2]*rowTemplate
}

func (c *outlineCache) template(depth int, hidden bool) *rowTemplate {
	for len(c.levels) <= depth {
		d := len(c.levels)
		var level string
		if d > 0 {
			level = strconv.Itoa(d)
		}
		c.levels = append(c.levels, [2]*rowTemplate{
			{level: level},
			{level: level, hidden: true},
		})
	}
	if hidden {
		return c.levels[depth][1]
	}
	return c.levels[depth][0]
}
