package git

// RepositoryInfo describes the git repository a browsed path belongs to
type RepositoryInfo struct {
	Root          string `json:"root"`
	CurrentBranch string `json:"branch,omitempty"`
	RemoteURL     string `json:"remote,omitempty"`
}
