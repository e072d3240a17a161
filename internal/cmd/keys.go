package cmd

// decodeKeys translates a chunk of raw terminal bytes into key names
// matching the binding vocabulary ("a".."z", "space", "enter", ...).
// Escape sequences for arrow keys map to "arrow_*".
func decodeKeys(buf []byte) []string {
	var keys []string
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		switch {
		case b == 0x1b:
			if i+2 < len(buf) && buf[i+1] == '[' {
				switch buf[i+2] {
				case 'A':
					keys = append(keys, "arrow_up")
				case 'B':
					keys = append(keys, "arrow_down")
				case 'C':
					keys = append(keys, "arrow_right")
				case 'D':
					keys = append(keys, "arrow_left")
				}
				i += 2
				continue
			}
			keys = append(keys, "escape")
		case b == 0x03:
			keys = append(keys, "ctrl-c")
		case b == '\r' || b == '\n':
			keys = append(keys, "enter")
		case b == '\t':
			keys = append(keys, "tab")
		case b == 0x7f:
			keys = append(keys, "backspace")
		case b == ' ':
			keys = append(keys, "space")
		case b >= 'A' && b <= 'Z':
			keys = append(keys, string(b+('a'-'A')))
		case b > 0x20 && b < 0x7f:
			keys = append(keys, string(b))
		}
	}
	return keys
}
