package pdf

const (
	// ReorderSuffix is appended to the input stem for reorder output
	ReorderSuffix = "_reorder"

	// RotateSuffix is appended to the input stem for rotate output
	RotateSuffix = "_rot"

	// RemoveSuffix is appended to the input stem for remove-pages output
	RemoveSuffix = "_removed"

	// BackupSuffix names the original first input while it is being overwritten
	BackupSuffix = "_old"

	// PDFExtension is the extension of every output file
	PDFExtension = ".pdf"

	// OutputFilePermissions for files written by the tools
	OutputFilePermissions = 0644
)
