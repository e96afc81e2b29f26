package identity

import (
	"context"
	"errors"
	"sync"

	"pawsense/internal/domain/capture"
	"pawsense/internal/domain/pets"
)

var (
	ErrIntentPending = errors.New("capture intent already pending")
	ErrNotActive     = errors.New("identity step not active")
)

// State es el único estado del flujo; reemplaza los tres popups.
// @Enum idle, ask_registered, select_existing, create_pet_prompt
type State string

const (
	Idle            State = "idle"
	AskRegistered   State = "ask_registered"
	SelectExisting  State = "select_existing"
	CreatePetPrompt State = "create_pet_prompt"
)

// PendingCaptureIntent recuerda qué quería capturar el usuario.
type PendingCaptureIntent struct {
	Kind capture.Kind
}

// Directory lista las mascotas del dueño por especie (pets.Service lo cumple).
type Directory interface {
	ListBySpecies(ctx context.Context, ownerUserID string, sp pets.Species) ([]pets.Pet, error)
}

// Target recibe el resultado del flujo: la mascota elegida y la captura a reanudar.
type Target interface {
	SetActivePet(p pets.Pet)
	ResumeCapture(ctx context.Context, kind capture.Kind) error
}

type Snapshot struct {
	State       State
	PendingKind capture.Kind
	SpeciesTab  pets.Species
	ChosenPetID string
}

// Flow es seguro para uso concurrente. El directorio y el target se
// invocan siempre fuera del lock.
type Flow struct {
	owner  string
	dir    Directory
	target Target

	mu     sync.Mutex
	state  State
	intent *PendingCaptureIntent
	tab    pets.Species
	chosen *pets.Pet
}

func NewFlow(ownerUserID string, dir Directory, target Target) *Flow {
	return &Flow{
		owner:  ownerUserID,
		dir:    dir,
		target: target,
		state:  Idle,
		tab:    pets.SpeciesDog,
	}
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := Snapshot{State: f.state, SpeciesTab: f.tab}
	if f.intent != nil {
		s.PendingKind = f.intent.Kind
	}
	if f.chosen != nil {
		s.ChosenPetID = f.chosen.ID
	}
	return s
}

// Pending indica si hay una intención sin resolver.
func (f *Flow) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.intent != nil
}

// Begin registra la intención y pregunta si la mascota está registrada.
// CreatePetPrompt es terminal: una nueva captura arranca un flujo limpio.
func (f *Flow) Begin(kind capture.Kind) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != Idle && f.state != CreatePetPrompt {
		return ErrIntentPending
	}
	f.reset()
	f.intent = &PendingCaptureIntent{Kind: kind}
	f.state = AskRegistered
	return nil
}

// Answer: No => CreatePetPrompt y la intención se descarta (no se reanuda
// después de crear la mascota). Sí => SelectExisting con la pestaña dog.
func (f *Flow) Answer(registered bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != AskRegistered {
		return ErrNotActive
	}
	if !registered {
		f.intent = nil
		f.state = CreatePetPrompt
		return nil
	}
	f.state = SelectExisting
	f.tab = pets.SpeciesDog
	f.chosen = nil
	return nil
}

// SetSpeciesTab cambia el filtro; una elección de otra especie se descarta.
func (f *Flow) SetSpeciesTab(sp pets.Species) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != SelectExisting {
		return ErrNotActive
	}
	f.tab = pets.ParseSpecies(string(sp))
	if f.chosen != nil && f.chosen.Species != f.tab {
		f.chosen = nil
	}
	return nil
}

// Candidates devuelve las mascotas de la pestaña actual.
func (f *Flow) Candidates(ctx context.Context) ([]pets.Pet, error) {
	f.mu.Lock()
	if f.state != SelectExisting {
		f.mu.Unlock()
		return nil, ErrNotActive
	}
	tab := f.tab
	f.mu.Unlock()

	return f.dir.ListBySpecies(ctx, f.owner, tab)
}

// Choose marca una mascota de la lista filtrada. Un id que no está en la
// lista cuenta como "sin selección" y devuelve false.
func (f *Flow) Choose(ctx context.Context, petID string) (bool, error) {
	list, err := f.Candidates(ctx)
	if err != nil {
		return false, err
	}

	var found *pets.Pet
	for i := range list {
		if list[i].ID == petID {
			p := list[i]
			found = &p
			break
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// el estado pudo cambiar mientras listábamos
	if f.state != SelectExisting {
		return false, ErrNotActive
	}
	if found != nil && found.Species != f.tab {
		found = nil
	}
	f.chosen = found
	return found != nil, nil
}

// Confirmation es el resultado de Confirm.
type Confirmation struct {
	Confirmed bool
	Pet       pets.Pet
	Resumed   capture.Kind
}

// Confirm sin elección no hace nada (sigue en SelectExisting). Con elección:
// fija la mascota activa (y con ella la especie), vuelve a Idle y reanuda
// la captura pendiente. Un error al reanudar no deshace la selección.
func (f *Flow) Confirm(ctx context.Context) (Confirmation, error) {
	f.mu.Lock()
	if f.state != SelectExisting {
		f.mu.Unlock()
		return Confirmation{}, ErrNotActive
	}
	if f.chosen == nil {
		f.mu.Unlock()
		return Confirmation{}, nil
	}

	pet := *f.chosen
	var kind capture.Kind
	if f.intent != nil {
		kind = f.intent.Kind
	}
	f.reset()
	f.mu.Unlock()

	f.target.SetActivePet(pet)

	c := Confirmation{Confirmed: true, Pet: pet, Resumed: kind}
	if kind == "" {
		return c, nil
	}
	if err := f.target.ResumeCapture(ctx, kind); err != nil {
		return c, err
	}
	return c, nil
}

// Cancel vuelve a Idle descartando la intención. En Idle no hace nada.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

// reset requiere f.mu tomado.
func (f *Flow) reset() {
	f.state = Idle
	f.intent = nil
	f.chosen = nil
	f.tab = pets.SpeciesDog
}
