package lexicon

// Thesis and position-taking
var (
	ThesisIndicators = newSet("thesis_indicators",
		"i believe", "i argue", "i will argue", "i contend", "this essay will",
		"this essay argues", "in this essay", "the purpose of this essay", "my position",
		"in my opinion", "this paper", "it is clear that", "should be", "must be",
		"the main argument", "i maintain",
	)

	TopicAnnouncements = newSet("topic_announcements",
		"will discuss", "will explore", "will examine", "will be discussed", "will show",
		"will demonstrate", "there are several reasons", "there are three reasons",
		"there are many reasons", "the following", "this essay will explain", "will analyze",
	)

	PositionPhrases = newSet("position_phrases",
		"i believe", "i argue", "i contend", "in my opinion", "i strongly", "my position",
		"i maintain", "i support", "i oppose", "i agree", "i disagree", "i am convinced",
	)

	ArgumentIndicators = newSet("argument_indicators",
		"i believe", "i argue", "therefore", "thus", "consequently", "it is clear",
		"clearly", "this shows", "should", "must", "hence", "it follows that",
	)
)

// Evidence
var (
	ExplicitEvidence = newSet("explicit_evidence",
		"for example", "for instance", "such as", "research shows", "studies show",
		"according to", "evidence suggests", "data shows", "statistics show", "a study",
		"a survey", "experts", "in fact", "to illustrate", "as shown by", "demonstrates",
		"a report by", "researchers found",
	)

	ImplicitEvidence = newSet("implicit_evidence",
		"because", "since", "shows", "proves", "suggests", "indicates", "reveals",
		"experience", "observed", "reported", "found that", "noticed",
	)
)

// Argument hygiene
var (
	CounterMarkers = newSet("counter_markers",
		"some argue", "some people argue", "critics", "opponents", "on the other hand",
		"others believe", "it could be argued", "some may say", "some might say",
		"admittedly", "skeptics", "while it is true", "some people believe",
		"opponents claim", "others may argue",
	)

	RebuttalMarkers = newSet("rebuttal_markers",
		"however", "nevertheless", "nonetheless", "but this ignores", "this overlooks",
		"even so", "in response", "this argument fails", "this view ignores",
		"on closer inspection", "in reality", "the evidence shows otherwise",
		"this fails to consider", "despite this",
	)

	FallacyTriggers = newSet("fallacy_triggers",
		"everyone knows", "everybody knows", "it is obvious", "obviously",
		"slippery slope", "if we allow", "all experts agree", "no one can deny",
		"common sense tells", "because i said so", "only an idiot", "it has always been",
	)

	AbsoluteWords = newSet("absolute_words",
		"always", "never", "everyone", "nobody", "everything", "nothing", "completely",
		"totally", "undeniably", "without exception", "absolutely",
	)
)

// Analysis and claim depth
var (
	AnalysisMarkers = newSet("analysis_markers",
		"this suggests", "this means", "this shows", "this demonstrates", "this implies",
		"which means", "as a result", "the significance", "the reason", "this highlights",
		"in other words", "this indicates", "this reveals", "this illustrates",
		"this proves", "this is important because",
	)

	ClaimQualifiers = newSet("claim_qualifiers",
		"to some extent", "in many cases", "often", "generally", "it is likely",
		"arguably", "tend to", "in part", "may", "might", "in most cases", "to a degree",
	)

	CausalLinks = newSet("causal_links",
		"leads to", "results in", "contributes to", "causes", "because of", "in turn",
		"due to", "as a result", "which leads", "gives rise to",
	)
)

// Organization
var (
	IntroMarkers = newSet("intro_markers",
		"in this essay", "this essay", "to begin", "first of all", "in today's",
		"have you ever", "imagine", "throughout history", "nowadays", "in recent years",
	)

	ConclusionMarkers = newSet("conclusion_markers",
		"in conclusion", "to conclude", "in summary", "to sum up", "overall",
		"ultimately", "in the end", "all in all", "to summarize", "in closing",
	)

	TopicSentenceIndicators = newSet("topic_sentence_indicators",
		"one reason", "another reason", "the first reason", "the second reason",
		"firstly", "secondly", "thirdly", "additionally", "furthermore", "moreover",
		"the main", "one way", "one example", "most importantly", "another important",
	)

	OrdinalWords = newSet("ordinal_words",
		"first", "second", "third", "fourth", "finally", "next", "another", "lastly",
	)

	CrossReferences = newSet("cross_references",
		"as mentioned", "as discussed", "as stated", "as noted", "previously",
		"earlier", "as shown above", "building on", "this connects", "returning to",
		"as explained",
	)
)

// Transition buckets
var (
	TransitionAddition = newSet("addition",
		"furthermore", "moreover", "in addition", "additionally", "also", "besides",
	)
	TransitionContrast = newSet("contrast",
		"however", "on the other hand", "in contrast", "nevertheless", "conversely",
		"whereas", "although",
	)
	TransitionCauseEffect = newSet("cause_effect",
		"therefore", "as a result", "consequently", "thus", "hence", "due to",
	)
	TransitionExample = newSet("example",
		"for example", "for instance", "such as", "to illustrate", "namely",
	)
	TransitionSequence = newSet("sequence",
		"first", "second", "next", "then", "finally", "subsequently", "meanwhile", "lastly",
	)
	TransitionEmphasis = newSet("emphasis",
		"indeed", "in fact", "most importantly", "above all", "certainly", "especially",
	)
)

// Tone buckets
var (
	TonePositive = newSet("positive",
		"good", "great", "happy", "hope", "benefit", "benefits", "positive", "improve",
		"success", "excellent", "love", "enjoy", "proud",
	)
	ToneReflective = newSet("reflective",
		"i realized", "i learned", "looking back", "i reflect", "i wonder",
		"it made me think", "i now understand", "in hindsight", "i often think",
	)
	ToneAssertive = newSet("assertive",
		"must", "should", "clearly", "certainly", "undoubtedly", "definitely",
		"without a doubt", "it is essential", "there is no question",
	)
	ToneEmpathetic = newSet("empathetic",
		"understand", "feel", "feelings", "empathy", "compassion", "others",
		"community", "support", "care", "struggle", "kindness",
	)
	ToneAnalytical = newSet("analytical",
		"analyze", "evidence", "data", "suggests", "indicates", "therefore",
		"consequently", "research", "factor", "factors", "significant",
	)
)

// Personal voice and reflection
var (
	PersonalPronouns = newSet("personal_pronouns",
		"i", "me", "my", "mine", "myself", "we", "our", "us",
	)

	AnecdotePhrases = newSet("anecdote_phrases",
		"when i was", "i remember", "one time", "last year", "in my experience", "i once",
		"my friend", "my family", "growing up", "last summer",
	)

	DeepReflection = newSet("deep_reflection",
		"i realized", "i learned", "this taught me", "looking back", "i now understand",
		"made me reflect", "in hindsight", "changed my perspective", "i came to understand",
		"it made me think",
	)

	PersonalGrowth = newSet("personal_growth",
		"i grew", "i developed", "i improved", "i overcame", "became more",
		"helped me become", "challenged me", "i matured", "i became", "i have learned to",
	)

	RealWorldApplication = newSet("real_world_application",
		"in the real world", "in real life", "in society", "in our community",
		"in the workplace", "today's world", "everyday life", "in practice",
		"future career", "apply this", "can be applied", "real world",
	)

	NoveltyMarkers = newSet("novelty_markers",
		"unique", "new perspective", "innovative", "unexpected", "surprisingly",
		"rarely considered", "original",
	)

	RelevanceMarkers = newSet("relevance_markers",
		"relevant", "matters because", "important because", "impact", "significance",
		"implications",
	)
)

// Style
var (
	SophisticatedVocabulary = newSet("sophisticated_vocabulary",
		"paradigm", "juxtaposition", "nuanced", "multifaceted", "ubiquitous",
		"substantiate", "ramification", "ramifications", "exacerbate", "mitigate",
		"dichotomy", "pragmatic", "profound", "inherent", "predominantly",
		"notwithstanding", "elucidate", "consequential", "unprecedented", "intrinsic",
	)

	RhetoricalDevices = newSet("rhetorical_devices",
		"imagine", "consider", "what if", "not only", "but also", "picture this",
		"think about", "ask yourself",
	)
)
