package domain

// Scenario represents a single scenario parsed from a scenario file
type Scenario struct {
	Subject   string    // Human-readable scenario name
	Path      string    // Absolute path to the scenario file
	StartLine int       // First line of the scenario document in the file
	EndLine   int       // Last line of the scenario document in the file
	Source    string    // Raw text of the scenario document block
	Steps     []StepDef // Step definitions in declaration order
	Vars      []Var     // Initial scope variables in declaration order
}

// StepDef describes one step of a scenario before execution
type StepDef struct {
	Name     string  // Step name
	Run      string  // Shell command to execute
	Register string  // Scope variable that receives the trimmed stdout
	Skip     bool    // Skip this step without running it
	Expect   *Expect // Optional assertions on the command outcome
}

// Expect holds the assertions a step makes about its command
type Expect struct {
	ExitCode       *int   // Expected exit code
	OutputContains string // Substring the combined output must contain
}

// Var is a single named value in a scenario scope
type Var struct {
	Name  string
	Value any
}

// Scope is an ordered set of scenario variables. Insertion order is
// preserved; setting an existing name updates it in place.
type Scope []Var

// Set adds or updates a variable, keeping its original position on update.
func (s *Scope) Set(name string, value any) {
	for i := range *s {
		if (*s)[i].Name == name {
			(*s)[i].Value = value
			return
		}
	}
	*s = append(*s, Var{Name: name, Value: value})
}

// Get returns the value for name, or nil and false when absent.
func (s Scope) Get(name string) (any, bool) {
	for _, v := range s {
		if v.Name == name {
			return v.Value, true
		}
	}
	return nil, false
}
