// Package seed populates a fresh virtual disk from templates embedded in the
// binary. The default template provides C:\AUTOEXEC.BAT, C:\DOS\README.TXT
// and a demo batch file.
package seed
