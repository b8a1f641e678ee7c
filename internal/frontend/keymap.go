package frontend

// keypadRunes maps every keypad key to the keyboard character it is bound to.
// The keypad rows 123C/456D/789E/A0BF sit on the keyboard rows 1234/QWER/ASDF/ZXCV.
var keypadRunes = [KeyCount]rune{
	0x1: '1', 0x2: '2', 0x3: '3', 0xC: '4',
	0x4: 'q', 0x5: 'w', 0x6: 'e', 0xD: 'r',
	0x7: 'a', 0x8: 's', 0x9: 'd', 0xE: 'f',
	0xA: 'z', 0x0: 'x', 0xB: 'c', 0xF: 'v',
}

// Keyboard characters of the commands.
const (
	ResetRune     = 'p'
	SpeedDownRune = '['
	SpeedUpRune   = ']'
	EscapeRune    = 0x1B
)

// keypadRune returns the keyboard character of a keypad key.
func keypadRune(key uint8) rune {
	return keypadRunes[key&0x0F]
}

// KeyForRune returns the keypad key bound to a keyboard character,
// ignoring its case.
func KeyForRune(r rune) (uint8, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	for key := range uint8(KeyCount) {
		if keypadRune(key) == r {
			return key, true
		}
	}
	return 0, false
}

// CommandForRune returns the command bound to a keyboard character.
func CommandForRune(r rune) Command {
	switch r {
	case ResetRune, 'P':
		return CommandReset
	case SpeedDownRune:
		return CommandSpeedDown
	case SpeedUpRune:
		return CommandSpeedUp
	case EscapeRune:
		return CommandQuit
	default:
		return CommandNone
	}
}
