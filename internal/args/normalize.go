package args

import "strings"

// Normalize rewrites the two-value resolution form into repeated flags so the
// standard flag parser can read it:
//
//	--video_resolution 1280 720   -> --video_resolution 1280 --video_resolution 720
//	--video_resolution 1280,720   -> same
//	--video_resolution=1280,720   -> same
//
// Everything else is passed through untouched.
func Normalize(argv []string) []string {
	if len(argv) == 0 {
		return argv
	}

	out := []string{argv[0]}
	for i := 1; i < len(argv); i++ {
		arg := argv[i]
		if arg == "--" {
			out = append(out, argv[i:]...)
			break
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != FlagResolution {
			out = append(out, arg)
			continue
		}

		var values []string
		switch {
		case hasValue:
			values = strings.Split(value, ",")
		case i+1 < len(argv) && strings.Contains(argv[i+1], ","):
			values = strings.Split(argv[i+1], ",")
			i++
		case i+2 < len(argv) && isValue(argv[i+1]) && isValue(argv[i+2]):
			values = []string{argv[i+1], argv[i+2]}
			i += 2
		case i+1 < len(argv):
			values = []string{argv[i+1]}
			i++
		default:
			// missing value; let the parser report it
			out = append(out, arg)
			continue
		}

		for _, v := range values {
			out = append(out, "--"+FlagResolution, strings.TrimSpace(v))
		}
	}
	return out
}

func isValue(s string) bool {
	return !strings.HasPrefix(s, "-")
}
