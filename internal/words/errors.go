package words

import "errors"

var ErrEmptyList = errors.New("word list is empty")
