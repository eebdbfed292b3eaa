package difficulty

// Profile holds the numeric scaling parameters a difficulty applies to the
// world: enemy and NPC multipliers plus the mode-exclusive behavior toggles.
type Profile struct {
	EnemyMaxLife       float64 `yaml:"enemy_max_life"`
	EnemyDamage        float64 `yaml:"enemy_damage"`
	DebuffTime         float64 `yaml:"debuff_time"`
	KnockbackToEnemies float64 `yaml:"knockback_to_enemies"`
	EnemyMoneyDrop     float64 `yaml:"enemy_money_drop"`
	TownNPCDamage      float64 `yaml:"town_npc_damage"`
	ExpertMode         bool    `yaml:"expert_mode"`
	MasterMode         bool    `yaml:"master_mode"`
	JourneyMode        bool    `yaml:"journey_mode"`
}

// Built-in scaling profiles for the numbered modes.
var (
	ClassicProfile = Profile{
		EnemyMaxLife:       1,
		EnemyDamage:        1,
		DebuffTime:         1,
		KnockbackToEnemies: 1,
		EnemyMoneyDrop:     1,
		TownNPCDamage:      1,
	}
	ExpertProfile = Profile{
		EnemyMaxLife:       2,
		EnemyDamage:        2,
		DebuffTime:         2,
		KnockbackToEnemies: 0.9,
		EnemyMoneyDrop:     2.5,
		TownNPCDamage:      1.5,
		ExpertMode:         true,
	}
	MasterProfile = Profile{
		EnemyMaxLife:       3,
		EnemyDamage:        3,
		DebuffTime:         2.5,
		KnockbackToEnemies: 0.8,
		EnemyMoneyDrop:     2.5,
		TownNPCDamage:      1.75,
		ExpertMode:         true,
		MasterMode:         true,
	}
	JourneyProfile = Profile{
		EnemyMaxLife:       1,
		EnemyDamage:        1,
		DebuffTime:         1,
		KnockbackToEnemies: 1,
		EnemyMoneyDrop:     1,
		TownNPCDamage:      1,
		JourneyMode:        true,
	}
)

// DefaultProfile is applied when a recorded custom difficulty cannot be resolved.
var DefaultProfile = ClassicProfile

// Profiles maps each numbered mode to its scaling profile.
type Profiles map[Kind]Profile

// DefaultProfiles returns the built-in profile table.
func DefaultProfiles() Profiles {
	return Profiles{
		KindClassic: ClassicProfile,
		KindExpert:  ExpertProfile,
		KindMaster:  MasterProfile,
		KindJourney: JourneyProfile,
	}
}

// For returns the profile of a numbered mode, or DefaultProfile.
func (p Profiles) For(k Kind) Profile {
	if prof, ok := p[k]; ok {
		return prof
	}
	return DefaultProfile
}
