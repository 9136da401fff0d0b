package runner

// oNoFollow is not supported on Windows, payload symlinks are caught by checkNoSymlinks.
const oNoFollow = 0
