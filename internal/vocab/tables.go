package vocab

// Canonical staff roles. French names are canonical because the catalog is;
// the keys enumerate the spellings the providers actually emit (AniList and
// Jikan are English, Nautiljon and Manga-News are French).
var staffRoles = map[string]entry{
	// 1: Réalisateur
	"Director":        {1, "Réalisateur"},
	"Réalisateur":     {1, "Réalisateur"},
	"Realisateur":     {1, "Réalisateur"},
	"Series Director": {1, "Réalisateur"},

	// 2: Scénariste
	"Script":             {2, "Scénariste"},
	"Screenplay":         {2, "Scénariste"},
	"Scénario":           {2, "Scénariste"},
	"Scenario":           {2, "Scénariste"},
	"Scénariste":         {2, "Scénariste"},
	"Series Composition": {2, "Scénariste"},
	"Story":              {2, "Scénariste"},

	// 3: Dessinateur
	"Art":          {3, "Dessinateur"},
	"Dessin":       {3, "Dessinateur"},
	"Dessinateur":  {3, "Dessinateur"},
	"Illustration": {3, "Dessinateur"},

	// 4: Auteur (story & art combined)
	"Story & Art":       {4, "Auteur"},
	"Auteur":            {4, "Auteur"},
	"Original Creator":  {4, "Auteur"},
	"Original Story":    {4, "Auteur"},
	"Créateur original": {4, "Auteur"},

	// 5: Character design
	"Character Design":          {5, "Character design"},
	"Character designer":        {5, "Character design"},
	"Original Character Design": {5, "Character design"},

	// 6: Compositeur
	"Music":          {6, "Compositeur"},
	"Musique":        {6, "Compositeur"},
	"Compositeur":    {6, "Compositeur"},
	"Sound Director": {6, "Compositeur"},

	// 7: Studio d'animation
	"Studio d'animation": {7, "Studio d'animation"},
	"Animation Studio":   {7, "Studio d'animation"},
	"Studio":             {7, "Studio d'animation"},

	// 8: Éditeur
	"Publisher": {8, "Éditeur"},
	"Éditeur":   {8, "Éditeur"},
	"Editeur":   {8, "Éditeur"},

	// 9: Traducteur
	"Translator": {9, "Traducteur"},
	"Traducteur": {9, "Traducteur"},
	"Traduction": {9, "Traducteur"},
}

// Canonical genres.
var genres = map[string]entry{
	"Action":          {1, "Action"},
	"Adventure":       {2, "Aventure"},
	"Aventure":        {2, "Aventure"},
	"Comedy":          {3, "Comédie"},
	"Comédie":         {3, "Comédie"},
	"Comedie":         {3, "Comédie"},
	"Drama":           {4, "Drame"},
	"Drame":           {4, "Drame"},
	"Fantasy":         {5, "Fantastique"},
	"Fantastique":     {5, "Fantastique"},
	"Horror":          {6, "Horreur"},
	"Horreur":         {6, "Horreur"},
	"Mystery":         {7, "Mystère"},
	"Mystère":         {7, "Mystère"},
	"Mystere":         {7, "Mystère"},
	"Psychological":   {8, "Psychologique"},
	"Psychologique":   {8, "Psychologique"},
	"Romance":         {9, "Romance"},
	"Sci-Fi":          {10, "Science-fiction"},
	"Science Fiction": {10, "Science-fiction"},
	"Science-fiction": {10, "Science-fiction"},
	"Slice of Life":   {11, "Tranche de vie"},
	"Tranche de vie":  {11, "Tranche de vie"},
	"Sports":          {12, "Sport"},
	"Sport":           {12, "Sport"},
	"Supernatural":    {13, "Surnaturel"},
	"Surnaturel":      {13, "Surnaturel"},
	"Thriller":        {14, "Thriller"},
	"Ecchi":           {15, "Ecchi"},
	"Mahou Shoujo":    {16, "Magical girl"},
	"Magical girl":    {16, "Magical girl"},
}

// Canonical themes/tags.
var themes = map[string]entry{
	"Mecha":              {101, "Mecha"},
	"School":             {102, "École"},
	"École":              {102, "École"},
	"Ecole":              {102, "École"},
	"School Life":        {102, "École"},
	"Vie scolaire":       {102, "École"},
	"Military":           {103, "Militaire"},
	"Militaire":          {103, "Militaire"},
	"Historical":         {104, "Historique"},
	"Historique":         {104, "Historique"},
	"Isekai":             {105, "Isekai"},
	"Time Travel":        {106, "Voyage temporel"},
	"Voyage temporel":    {106, "Voyage temporel"},
	"Vampire":            {107, "Vampire"},
	"Martial Arts":       {108, "Arts martiaux"},
	"Arts martiaux":      {108, "Arts martiaux"},
	"Music":              {109, "Musique"},
	"Musique":            {109, "Musique"},
	"Space":              {110, "Espace"},
	"Espace":             {110, "Espace"},
	"Demons":             {111, "Démons"},
	"Démons":             {111, "Démons"},
	"Super Power":        {112, "Super-pouvoirs"},
	"Super-pouvoirs":     {112, "Super-pouvoirs"},
	"Survival":           {113, "Survie"},
	"Survie":             {113, "Survie"},
	"Cyberpunk":          {114, "Cyberpunk"},
	"Post-Apocalyptic":   {115, "Post-apocalyptique"},
	"Post-apocalyptique": {115, "Post-apocalyptique"},
}
