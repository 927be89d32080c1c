package indexes

// Internals exercised by the external test package.
var (
	IsDuplicateKeyErr = isDuplicateKeyErr
	KeySig            = keySig
)
