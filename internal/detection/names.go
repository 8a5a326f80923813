package detection

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ClassNames maps model class ids to human-readable names by position.
type ClassNames []string

// DefaultClassNames matches the class order of the livestock model.
var DefaultClassNames = ClassNames{"chicken", "cow", "goat", "pig", "sheep"}

// Name returns the name for id, or "class{id}" when the id is out of range.
func (n ClassNames) Name(id int) string {
	if id >= 0 && id < len(n) && n[id] != "" {
		return n[id]
	}
	return "class" + strconv.Itoa(id)
}

// LoadClassNames reads one name per line. Blank lines are kept as empty
// names so line numbers stay aligned with class ids.
func LoadClassNames(path string) (ClassNames, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open labels file")
	}
	defer f.Close()

	var names ClassNames
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		names = append(names, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read labels file %s", path)
	}
	for len(names) > 0 && names[len(names)-1] == "" {
		names = names[:len(names)-1]
	}
	if len(names) == 0 {
		return nil, errors.Errorf("labels file %s is empty", path)
	}
	return names, nil
}
