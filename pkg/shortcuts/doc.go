// Package shortcuts creates desktop and start menu launchers for a
// committed duplicate.
//
// What a launcher is depends on the platform:
//   - windows: an Internet Shortcut (.url) pointing at the executable, or at
//     a .bat wrapper in the working directory when arguments are needed
//   - linux: a freedesktop .desktop entry
//   - darwin: an .app bundle with an Info.plist and a shell script
//
// Existing launchers are never overwritten.
package shortcuts
