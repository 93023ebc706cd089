package config

const SourceFileExt = ".sg"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".sg", ".sigil"}

// DeclFileExt is the extension of emitted declaration files.
const DeclFileExt = ".d.sg"

// Config file names searched for next to the sources.
var ConfigFileNames = []string{"sigil.yaml", "sigil.yml"}

// Built-in generic wrapper type names
const (
	PromiseTypeName        = "Promise"
	GeneratorTypeName      = "Generator"
	AsyncGeneratorTypeName = "AsyncGenerator"
	ArrayTypeName          = "Array"
)

// Built-in function names
const (
	PrintFuncName  = "print"
	LenFuncName    = "len"
	TypeOfFuncName = "typeOf"
)
