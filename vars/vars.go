package vars

const (
	// AppName is the user-visible application name, shown as the window
	// title and in generated files.
	AppName = "handcam"

	// ConfigDir is the directory under ~/.config holding the config file.
	ConfigDir = "handcam"

	// PhotoDir is the directory under ~/Pictures photos are saved to.
	PhotoDir = "Handcam"
)
