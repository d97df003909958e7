package eventlog

import "github.com/samber/lo"

// Stack identifies the application tier an event originates from.
type Stack string

const (
	StackBackend  Stack = "backend"
	StackFrontend Stack = "frontend"
)

// Level is the severity of an event. Levels are ordered by urgency but the
// logger never filters on them.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// Package tags the subsystem inside a tier that produced an event.
type Package string

// Backend-only packages.
const (
	PackageCache      Package = "cache"
	PackageController Package = "controller"
	PackageCronJob    Package = "cron_job"
	PackageDB         Package = "db"
	PackageDomain     Package = "domain"
	PackageHandler    Package = "handler"
	PackageRepository Package = "repository"
	PackageRoute      Package = "route"
	PackageService    Package = "service"
)

// Frontend-only packages.
const (
	PackageAPI       Package = "api"
	PackageComponent Package = "component"
	PackageHook      Package = "hook"
	PackagePage      Package = "page"
	PackageState     Package = "state"
	PackageStyle     Package = "style"
)

// Packages valid for either tier.
const (
	PackageAuth       Package = "auth"
	PackageConfig     Package = "config"
	PackageMiddleware Package = "middleware"
	PackageUtils      Package = "utils"
)

var (
	stacks = []Stack{StackBackend, StackFrontend}
	levels = []Level{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal}

	backendPackages = []Package{
		PackageCache, PackageController, PackageCronJob, PackageDB, PackageDomain,
		PackageHandler, PackageRepository, PackageRoute, PackageService,
	}
	frontendPackages = []Package{
		PackageAPI, PackageComponent, PackageHook, PackagePage, PackageState, PackageStyle,
	}
	sharedPackages = []Package{
		PackageAuth, PackageConfig, PackageMiddleware, PackageUtils,
	}

	packagesByStack = map[Stack][]Package{
		StackBackend:  lo.Union(backendPackages, sharedPackages),
		StackFrontend: lo.Union(frontendPackages, sharedPackages),
	}
)

// Stacks returns every known stack.
func Stacks() []Stack {
	return append([]Stack(nil), stacks...)
}

// Levels returns every known level, least urgent first.
func Levels() []Level {
	return append([]Level(nil), levels...)
}

// PackagesFor returns the packages accepted for the given stack: the
// tier-exclusive ones followed by the shared ones. Unknown stacks have none.
func PackagesFor(s Stack) []Package {
	return append([]Package(nil), packagesByStack[s]...)
}

// Valid reports whether s is a known stack.
func (s Stack) Valid() bool {
	return lo.Contains(stacks, s)
}

// Allows reports whether p may be used with s.
func (s Stack) Allows(p Package) bool {
	return lo.Contains(packagesByStack[s], p)
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	return lo.Contains(levels, l)
}
