package prompts

import _ "embed"

// Embedded prompt files

//go:embed system_instruction.txt
var systemInstruction string

//go:embed boolean_mandate.txt
var booleanMandate string

//go:embed printer_instruction.txt
var printerInstruction string

func SystemInstruction() string  { return systemInstruction }
func BooleanMandate() string     { return booleanMandate }
func PrinterInstruction() string { return printerInstruction }
