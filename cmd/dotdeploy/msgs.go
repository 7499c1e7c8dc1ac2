package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Deploy a dotfiles directory into your home"
	MsgInstallShort   = "Link dotfiles into the target directory"
	MsgStatusShort    = "Show deployment status of every managed file"
	MsgStatusLong     = "Status compares the deployment plan against the target directory and reports each file as linked, stale, conflicting, or missing. Nothing is modified."
	MsgGenConfigShort = "Generate a default configuration file"
	MsgGenConfigLong  = "Output the default configuration to stdout, or write it into the source directory with -w."
	MsgDocsShort      = "Show the dotdeploy manual"
	MsgVersionShort   = "Print version information"

	// Status messages
	MsgDryRunNotice  = "\nDRY RUN MODE - No changes were made"
	MsgConfigWritten = "Wrote %s\n"
	MsgConfigExists  = "%s already exists, not overwriting\n"

	// Error messages
	MsgErrInitPaths  = "failed to initialize paths: %w"
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrInstall    = "installation failed: %w"
	MsgErrStatus     = "failed to compute status: %w"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagSource  = "Dotfiles source directory (default: $DOTFILES_ROOT, then the executable's directory)"
	MsgFlagTarget  = "Target directory to deploy into (default: current directory)"
	MsgFlagFormat  = "Output format: text, json, or yaml"
	MsgFlagWrite   = "Write the config into the source directory instead of stdout"
)

// Long messages
const (
	MsgRootLong = `dotdeploy links the files of a dotfiles checkout into a target
directory, usually your home. Regular entries become a single symlink,
directories marked for per-file linking get their contents linked one
by one, and anything already in the way is renamed aside before the
link is created. A seed directory provides one-time starter copies
that are never overwritten on later runs.

Run it from the target directory, never from inside the source.`

	MsgInstallLong = `Install scans the source directory, applies the skip list, and links
every remaining entry into the target. Existing files are renamed
aside with a backup prefix before their symlink is created. Re-running
is safe: up-to-date links are left alone.`

	MsgInstallExample = `  dotdeploy install
  dotdeploy install --dry-run
  dotdeploy install --source ~/dotfiles --target ~`

	MsgStatusExample = `  dotdeploy status
  dotdeploy status --format json`

	MsgGenConfigExample = `  dotdeploy gen-config          # Output to stdout
  dotdeploy gen-config -w       # Write to <source>/.dotdeploy.toml`
)
