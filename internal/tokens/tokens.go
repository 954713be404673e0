package tokens

type TOKEN string

const (
	//keywords
	LET_TOKEN      TOKEN = "let"
	VAR_TOKEN      TOKEN = "var"
	IF_TOKEN       TOKEN = "if"
	ELSE_TOKEN     TOKEN = "else"
	FOR_TOKEN      TOKEN = "for"
	IN_TOKEN       TOKEN = "in"
	WHILE_TOKEN    TOKEN = "while"
	DO_TOKEN       TOKEN = "do"
	PRIVATE_TOKEN  TOKEN = "priv"
	STATIC_TOKEN   TOKEN = "static"
	RETURN_TOKEN   TOKEN = "ret"
	BREAK_TOKEN    TOKEN = "break"
	CONTINUE_TOKEN TOKEN = "continue"
	FUNCTION_TOKEN TOKEN = "fn"
	CLASS_TOKEN    TOKEN = "class"
	ENUM_TOKEN     TOKEN = "enum"
	NEW_TOKEN      TOKEN = "new"
	TRUE_TOKEN     TOKEN = "true"
	FALSE_TOKEN    TOKEN = "false"
	//Binary operators
	AND_TOKEN TOKEN = "&&"
	OR_TOKEN  TOKEN = "||"
	//bitwise operators
	BIT_AND_TOKEN TOKEN = "&"
	BIT_OR_TOKEN  TOKEN = "|"
	BIT_XOR_TOKEN TOKEN = "^"
	BIT_NOT_TOKEN TOKEN = "~"
	//unary operators
	NOT_TOKEN TOKEN = "!"
	//arithmetic operators
	MINUS_TOKEN TOKEN = "-"
	PLUS_TOKEN  TOKEN = "+"
	MUL_TOKEN   TOKEN = "*"
	DIV_TOKEN   TOKEN = "/"
	MOD_TOKEN   TOKEN = "%"
	//logical operators
	LESS_EQUAL_TOKEN    TOKEN = "<="
	GREATER_EQUAL_TOKEN TOKEN = ">="
	NOT_EQUAL_TOKEN     TOKEN = "!="
	DOUBLE_EQUAL_TOKEN  TOKEN = "=="
	LESS_TOKEN          TOKEN = "<"
	GREATER_TOKEN       TOKEN = ">"
	//assignment
	EQUALS_TOKEN TOKEN = "="
	//delimiters
	ARROW_TOKEN TOKEN = "->"
)

var keyWordsMap map[TOKEN]bool = map[TOKEN]bool{
	LET_TOKEN:      true,
	VAR_TOKEN:      true,
	IF_TOKEN:       true,
	ELSE_TOKEN:     true,
	FOR_TOKEN:      true,
	IN_TOKEN:       true,
	WHILE_TOKEN:    true,
	DO_TOKEN:       true,
	PRIVATE_TOKEN:  true,
	STATIC_TOKEN:   true,
	RETURN_TOKEN:   true,
	BREAK_TOKEN:    true,
	CONTINUE_TOKEN: true,
	FUNCTION_TOKEN: true,
	CLASS_TOKEN:    true,
	ENUM_TOKEN:     true,
	NEW_TOKEN:      true,
	TRUE_TOKEN:     true,
	FALSE_TOKEN:    true,
}

var unaryOperators = map[TOKEN]bool{
	PLUS_TOKEN:    true,
	MINUS_TOKEN:   true,
	NOT_TOKEN:     true,
	BIT_NOT_TOKEN: true,
}

var binaryOperators = map[TOKEN]bool{
	PLUS_TOKEN:          true,
	MINUS_TOKEN:         true,
	MUL_TOKEN:           true,
	DIV_TOKEN:           true,
	MOD_TOKEN:           true,
	BIT_AND_TOKEN:       true,
	BIT_OR_TOKEN:        true,
	BIT_XOR_TOKEN:       true,
	AND_TOKEN:           true,
	OR_TOKEN:            true,
	DOUBLE_EQUAL_TOKEN:  true,
	NOT_EQUAL_TOKEN:     true,
	LESS_TOKEN:          true,
	LESS_EQUAL_TOKEN:    true,
	GREATER_TOKEN:       true,
	GREATER_EQUAL_TOKEN: true,
}

func IsKeyword(token string) bool {
	if _, ok := keyWordsMap[TOKEN(token)]; ok {
		return true
	}
	return false
}

func IsUnaryOperator(token string) bool {
	return unaryOperators[TOKEN(token)]
}

func IsBinaryOperator(token string) bool {
	return binaryOperators[TOKEN(token)]
}
