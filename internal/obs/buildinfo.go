package obs

// Version identifica o build; sobrescrita via
// -ldflags "-X github.com/zapcrm/acesso/internal/obs.Version=...".
var Version = "1.0.0"
