package extract

// Package extract unpacks the downloaded ZIP archive into a user-chosen
// directory. Extract validates every entry before writing so a hostile or
// corrupt archive never writes outside the target directory.
